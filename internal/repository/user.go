package repository

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"innovision/internal/firebase"
	"innovision/internal/models"
	"innovision/internal/qerrors"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"

	firebaseAuth "firebase.google.com/go/auth"
)

func (fr *FirebaseRepository) initializeUserProfilesListener() {
	handleDoc := func(doc *firestore.DocumentSnapshot) error {
		fr.profilesLock.Lock()
		defer fr.profilesLock.Unlock()

		var userProfile models.Profile
		err := mapstructure.Decode(doc.Data(), &userProfile)
		if err != nil {
			return err
		}
		fr.profiles[doc.Ref.ID] = &userProfile

		return nil
	}

	done := make(chan bool)
	go fr.createCollectionInitializer(models.FirestoreUsersCollection, &done, handleDoc)
	<-done
}

// VerifySessionCookie verifies that the given session cookie is valid and
// returns the associated User if valid.
func (fr *FirebaseRepository) VerifySessionCookie(sessionCookie *http.Cookie) (*models.User, error) {
	decoded, err := fr.authClient.VerifySessionCookieAndCheckRevoked(firebase.Context, sessionCookie.Value)
	if err != nil {
		return nil, fmt.Errorf("error verifying cookie: %v\n", err)
	}

	return fr.userFromToken(decoded)
}

// VerifyBearerToken verifies a short-lived ID token from an Authorization
// header and returns the associated User if valid.
func (fr *FirebaseRepository) VerifyBearerToken(token string) (*models.User, error) {
	decoded, err := fr.authClient.VerifyIDToken(firebase.Context, token)
	if err != nil {
		return nil, fmt.Errorf("error verifying ID token: %v\n", err)
	}

	return fr.userFromToken(decoded)
}

// userFromToken resolves a verified token into a User. The identity is the
// token's email when present, the Firebase UID otherwise — email is the
// document key throughout the database.
func (fr *FirebaseRepository) userFromToken(decoded *firebaseAuth.Token) (*models.User, error) {
	id := decoded.UID
	email, _ := decoded.Claims["email"].(string)
	if email != "" {
		id = email
	}

	profile, err := fr.getUserProfile(id)
	if err != nil {
		// no profile for the user found, create one.
		name, _ := decoded.Claims["name"].(string)
		picture, _ := decoded.Claims["picture"].(string)
		profile = &models.Profile{
			DisplayName: name,
			Email:       email,
			PhotoURL:    picture,
		}
		_, err = fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Set(firebase.Context, map[string]interface{}{
			"displayName": profile.DisplayName,
			"email":       profile.Email,
			"photoUrl":    profile.PhotoURL,
			"id":          id,
		}, firestore.MergeAll)
		if err != nil {
			return nil, fmt.Errorf("error creating user profile: %v\n", err)
		}
	}

	return &models.User{
		Profile: profile,
		ID:      id,
		UID:     decoded.UID,
	}, nil
}

// CreateSessionCookie exchanges a verified ID token for a long-lived session
// cookie value.
func (fr *FirebaseRepository) CreateSessionCookie(idToken string, expiresIn time.Duration) (string, error) {
	return fr.authClient.SessionCookie(firebase.Context, idToken, expiresIn)
}

// GetUserByID retrieves the User associated with the given ID (email).
func (fr *FirebaseRepository) GetUserByID(id string) (*models.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	profile, err := fr.getUserProfile(id)
	if err != nil {
		doc, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(id).Get(firebase.Context)
		if err != nil {
			return nil, qerrors.UserNotFoundError
		}

		profile = &models.Profile{}
		if err := mapstructure.Decode(doc.Data(), profile); err != nil {
			return nil, err
		}
	}

	return &models.User{Profile: profile, ID: id}, nil
}

func (fr *FirebaseRepository) UpdateUser(r *models.UpdateUserRequest) error {
	if r.DisplayName == "" {
		return qerrors.InvalidBody
	}

	_, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(r.UserID).Update(firebase.Context, []firestore.Update{
		{
			Path:  "displayName",
			Value: r.DisplayName,
		},
		{
			Path:  "photoUrl",
			Value: r.PhotoURL,
		},
	})

	return err
}

// AddNotification appends a notification to the user's notification
// subcollection. Callers treat this as fire-and-forget.
func (fr *FirebaseRepository) AddNotification(c *models.CreateNotificationRequest) error {
	_, _, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(c.UserID).
		Collection(models.FirestoreNotificationsCollection).Add(firebase.Context, map[string]interface{}{
		"title":     c.Title,
		"body":      c.Body,
		"type":      c.Type,
		"link":      c.Link,
		"read":      false,
		"createdAt": time.Now(),
	})
	return err
}

func (fr *FirebaseRepository) ClearNotification(c *models.ClearNotificationRequest) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(c.UserID).
		Collection(models.FirestoreNotificationsCollection).Doc(c.NotificationID).Delete(firebase.Context)
	return err
}

func (fr *FirebaseRepository) ClearAllNotifications(c *models.ClearAllNotificationsRequest) error {
	iter := fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(c.UserID).
		Collection(models.FirestoreNotificationsCollection).Documents(firebase.Context)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}

		if _, err := doc.Ref.Delete(firebase.Context); err != nil {
			return err
		}
	}
	return nil
}

// SubscribeNewsletter records a newsletter subscriber, keyed by email so
// re-subscribing is a no-op.
func (fr *FirebaseRepository) SubscribeNewsletter(email string) error {
	if err := validateEmail(email); err != nil {
		return qerrors.InvalidBody
	}

	_, err := fr.firestoreClient.Collection(models.FirestoreNewsletterCollection).Doc(email).Set(firebase.Context, map[string]interface{}{
		"email":        email,
		"subscribedAt": time.Now(),
	}, firestore.MergeAll)
	return err
}

// Helpers

// getUserProfile gets the Profile from the profiles map corresponding to the provided user ID.
func (fr *FirebaseRepository) getUserProfile(id string) (*models.Profile, error) {
	fr.profilesLock.RLock()
	defer fr.profilesLock.RUnlock()

	if val, ok := fr.profiles[id]; ok {
		return val, nil
	} else {
		return nil, qerrors.UserProfileNotFoundError
	}
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email must be a non-empty string")
	}
	if parts := strings.Split(email, "@"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("malformed email string: %q", email)
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("id must be a non-empty string")
	}
	if len(id) > 128 {
		return fmt.Errorf("id string must not be longer than 128 characters")
	}
	return nil
}
