package models

const (
	FirestoreGamificationCollection = "gamification"
)

// GamificationStats is the per-user XP and activity record, keyed by email.
// LastActive and LastReminderSentAt are stored as RFC 3339 strings so the
// reminder scan can compare them lexicographically in a range query.
type GamificationStats struct {
	UserID             string `json:"userId" mapstructure:"userId"`
	UserName           string `json:"userName" mapstructure:"userName"`
	XP                 int    `json:"xp" mapstructure:"xp"`
	LastActive         string `json:"lastActive" mapstructure:"lastActive"`
	LastReminderSentAt string `json:"lastReminderSentAt,omitempty" mapstructure:"lastReminderSentAt"`
}

type XPAction string

const (
	XPActionChapterCompleted XPAction = "chapter_completed"
	XPActionCourseCompleted  XPAction = "course_completed"
	XPActionReviewSubmitted  XPAction = "review_submitted"
	XPActionDailyLogin       XPAction = "daily_login"
	XPActionCustom           XPAction = "custom"
)

// XPForAction maps an action to the number of points it awards. Custom awards
// carry their own value.
func XPForAction(action XPAction, value int) int {
	switch action {
	case XPActionChapterCompleted:
		return 50
	case XPActionCourseCompleted:
		return 200
	case XPActionReviewSubmitted:
		return 20
	case XPActionDailyLogin:
		return 10
	case XPActionCustom:
		if value > 0 {
			return value
		}
		return 0
	default:
		return 0
	}
}

// AwardXPRequest is the parameter struct for the AwardXP function.
type AwardXPRequest struct {
	UserID   string   `json:"userId"`
	UserName string   `json:",omitempty"`
	Action   XPAction `json:"action"`
	Value    int      `json:"value,omitempty"`
}
