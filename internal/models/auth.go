package models

import "time"

const (
	FirestoreUsersCollection         = "users"
	FirestoreNotificationsCollection = "notifications"
	FirestoreNewsletterCollection    = "newsletter"
)

type NotificationType string

const (
	NotificationSystem      NotificationType = "system"
	NotificationAchievement NotificationType = "achievement"
	NotificationReminder    NotificationType = "reminder"
)

// Profile is a collection of standard profile information for a user.
// This struct separates client-safe profile information from internal user metadata.
type Profile struct {
	DisplayName string `json:"displayName" mapstructure:"displayName"`
	Email       string `json:"email" mapstructure:"email"`
	PhotoURL    string `json:"photoUrl,omitempty" mapstructure:"photoUrl"`
	IsAdmin     bool   `json:"isAdmin,omitempty" mapstructure:"isAdmin"`
}

// User represents a signed-in user. ID is the user's email address, which is
// the document key throughout the database.
type User struct {
	*Profile
	ID  string `json:"id" mapstructure:"id"`
	UID string `json:"uid,omitempty" mapstructure:"uid"`
}

type Notification struct {
	ID        string           `json:"id" mapstructure:"id"`
	Title     string           `json:"title" mapstructure:"title"`
	Body      string           `json:"body" mapstructure:"body"`
	Type      NotificationType `json:"type" mapstructure:"type"`
	Link      string           `json:"link,omitempty" mapstructure:"link"`
	Read      bool             `json:"read" mapstructure:"read"`
	CreatedAt time.Time        `json:"createdAt" mapstructure:"createdAt"`
}

// CreateNotificationRequest is the parameter struct for the AddNotification function.
type CreateNotificationRequest struct {
	UserID string           `json:"userId"`
	Title  string           `json:"title"`
	Body   string           `json:"body"`
	Type   NotificationType `json:"type"`
	Link   string           `json:"link,omitempty"`
}

// UpdateUserRequest is the parameter struct for the UpdateUser function.
type UpdateUserRequest struct {
	// Will be set from context
	UserID      string `json:",omitempty"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

// ClearNotificationRequest is the parameter struct for the ClearNotification function.
type ClearNotificationRequest struct {
	UserID         string `json:",omitempty"`
	NotificationID string `json:"notificationId" mapstructure:"notificationId"`
}

// ClearAllNotificationsRequest is the parameter struct for the ClearAllNotifications function.
type ClearAllNotificationsRequest struct {
	UserID string `json:",omitempty"`
}

// SubscribeNewsletterRequest is the parameter struct for the SubscribeNewsletter function.
type SubscribeNewsletterRequest struct {
	Email string `json:"email"`
}
