package repository

import (
	"time"

	"innovision/internal/firebase"
	"innovision/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"
)

func (fr *FirebaseRepository) gamificationRef(userID string) *firestore.DocumentRef {
	return fr.firestoreClient.Collection(models.FirestoreGamificationCollection).Doc(userID)
}

// GetStats returns the user's gamification record, zero-valued when the user
// has never earned XP.
func (fr *FirebaseRepository) GetStats(userID string) (*models.GamificationStats, error) {
	doc, err := fr.gamificationRef(userID).Get(firebase.Context)
	if err != nil {
		if notFound(err) {
			return &models.GamificationStats{UserID: userID}, nil
		}
		return nil, err
	}

	var stats models.GamificationStats
	if err := mapstructure.Decode(doc.Data(), &stats); err != nil {
		return nil, err
	}
	stats.UserID = doc.Ref.ID

	return &stats, nil
}

// AwardXP adds points for an action and stamps lastActive, since earning XP
// is genuine user activity.
func (fr *FirebaseRepository) AwardXP(c *models.AwardXPRequest) (*models.GamificationStats, error) {
	stats, err := fr.GetStats(c.UserID)
	if err != nil {
		return nil, err
	}

	stats.XP += models.XPForAction(c.Action, c.Value)
	stats.LastActive = time.Now().UTC().Format(time.RFC3339)

	data := map[string]interface{}{
		"xp":         stats.XP,
		"lastActive": stats.LastActive,
	}
	if c.UserName != "" {
		stats.UserName = c.UserName
		data["userName"] = c.UserName
	}

	_, err = fr.gamificationRef(c.UserID).Set(firebase.Context, data, firestore.MergeAll)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// TouchLastActive stamps the user's lastActive without changing XP.
func (fr *FirebaseRepository) TouchLastActive(userID string) error {
	_, err := fr.gamificationRef(userID).Set(firebase.Context, map[string]interface{}{
		"lastActive": time.Now().UTC().Format(time.RFC3339),
	}, firestore.MergeAll)
	return err
}

// InactiveUsers returns every gamification record whose lastActive predates
// the cutoff. Timestamps are RFC 3339 strings, so the range query compares
// them lexicographically.
func (fr *FirebaseRepository) InactiveUsers(cutoff time.Time) ([]*models.GamificationStats, error) {
	iter := fr.firestoreClient.Collection(models.FirestoreGamificationCollection).
		Where("lastActive", "<", cutoff.UTC().Format(time.RFC3339)).
		Documents(firebase.Context)

	var users []*models.GamificationStats
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var stats models.GamificationStats
		if err := mapstructure.Decode(doc.Data(), &stats); err != nil {
			return nil, err
		}
		stats.UserID = doc.Ref.ID
		users = append(users, &stats)
	}

	return users, nil
}

// MarkReminded resets the inactivity clock after a successful reminder send,
// which is what prevents the same user being re-notified on every daily run.
func (fr *FirebaseRepository) MarkReminded(userID string, at time.Time) error {
	stamp := at.UTC().Format(time.RFC3339)
	_, err := fr.gamificationRef(userID).Set(firebase.Context, map[string]interface{}{
		"lastActive":         stamp,
		"lastReminderSentAt": stamp,
	}, firestore.MergeAll)
	return err
}
