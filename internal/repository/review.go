package repository

import (
	"fmt"
	"time"

	"innovision/internal/firebase"
	"innovision/internal/models"
	"innovision/internal/qerrors"
	"innovision/internal/reviews"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"
)

// ListReviews returns a course's reviews with reported ones filtered out,
// sorted by the given option.
func (fr *FirebaseRepository) ListReviews(courseID string, sortBy models.ReviewSort) ([]*models.Review, error) {
	field, dir, err := reviews.SortKey(sortBy)
	if err != nil {
		return nil, err
	}

	iter := fr.firestoreClient.Collection(models.FirestoreReviewsCollection).
		Where("courseId", "==", courseID).
		Where("reported", "==", false).
		OrderBy(field, dir).
		Documents(firebase.Context)

	result := make([]*models.Review, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var review models.Review
		if err := mapstructure.Decode(doc.Data(), &review); err != nil {
			return nil, err
		}
		review.ID = doc.Ref.ID
		result = append(result, &review)
	}

	return result, nil
}

// GetRatingStats returns the maintained per-course aggregate, zero-valued
// when no review has been written yet.
func (fr *FirebaseRepository) GetRatingStats(courseID string) (*models.RatingStats, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreCourseRatingsCollection).Doc(courseID).Get(firebase.Context)
	if err != nil {
		if notFound(err) {
			return &models.RatingStats{}, nil
		}
		return nil, err
	}

	var stats models.RatingStats
	if err := mapstructure.Decode(doc.Data(), &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// CreateOrUpdateReview writes the caller's review for a course. One review
// per (course, user) is enforced here: a second submission edits the first.
// The maintained aggregate is updated on the same call. The returned bool
// reports whether a new review was created.
func (fr *FirebaseRepository) CreateOrUpdateReview(c *models.CreateReviewRequest) (*models.Review, bool, error) {
	if err := reviews.ValidateRating(c.Rating); err != nil {
		return nil, false, err
	}

	stats, err := fr.GetRatingStats(c.CourseID)
	if err != nil {
		return nil, false, err
	}

	existing := fr.firestoreClient.Collection(models.FirestoreReviewsCollection).
		Where("courseId", "==", c.CourseID).
		Where("userId", "==", c.UserID).
		Limit(1).Documents(firebase.Context)

	doc, err := existing.Next()
	if err != nil && err != iterator.Done {
		return nil, false, err
	}

	if err == nil {
		var previous models.Review
		if err := mapstructure.Decode(doc.Data(), &previous); err != nil {
			return nil, false, err
		}

		_, err = doc.Ref.Update(firebase.Context, []firestore.Update{
			{
				Path:  "rating",
				Value: c.Rating,
			},
			{
				Path:  "comment",
				Value: c.Comment,
			},
		})
		if err != nil {
			return nil, false, fmt.Errorf("error updating review: %v", err)
		}

		if err := fr.saveRatingStats(c.CourseID, reviews.EditAggregate(*stats, previous.Rating, c.Rating)); err != nil {
			return nil, false, err
		}

		previous.ID = doc.Ref.ID
		previous.Rating = c.Rating
		previous.Comment = c.Comment
		return &previous, false, nil
	}

	review := &models.Review{
		CourseID:     c.CourseID,
		UserID:       c.UserID,
		UserName:     c.UserName,
		Rating:       c.Rating,
		Comment:      c.Comment,
		Reported:     false,
		HelpfulCount: 0,
		CreatedAt:    time.Now(),
	}

	ref, _, err := fr.firestoreClient.Collection(models.FirestoreReviewsCollection).Add(firebase.Context, map[string]interface{}{
		"courseId":     review.CourseID,
		"userId":       review.UserID,
		"userName":     review.UserName,
		"rating":       review.Rating,
		"comment":      review.Comment,
		"reported":     review.Reported,
		"helpfulCount": review.HelpfulCount,
		"createdAt":    review.CreatedAt,
	})
	if err != nil {
		return nil, false, fmt.Errorf("error creating review: %v", err)
	}

	if err := fr.saveRatingStats(c.CourseID, reviews.AddToAggregate(*stats, c.Rating)); err != nil {
		return nil, false, err
	}

	review.ID = ref.ID
	return review, true, nil
}

// MarkReviewHelpful increments a review's helpful count.
func (fr *FirebaseRepository) MarkReviewHelpful(c *models.ReviewActionRequest) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreReviewsCollection).Doc(c.ReviewID).Update(firebase.Context, []firestore.Update{
		{
			Path:  "helpfulCount",
			Value: firestore.Increment(1),
		},
	})
	if notFound(err) {
		return qerrors.ReviewNotFoundError
	}
	return err
}

// ReportReview soft-removes a review: the document stays but is filtered from
// every listing, and its rating leaves the maintained aggregate.
func (fr *FirebaseRepository) ReportReview(c *models.ReviewActionRequest) error {
	doc, err := fr.firestoreClient.Collection(models.FirestoreReviewsCollection).Doc(c.ReviewID).Get(firebase.Context)
	if err != nil {
		if notFound(err) {
			return qerrors.ReviewNotFoundError
		}
		return err
	}

	var review models.Review
	if err := mapstructure.Decode(doc.Data(), &review); err != nil {
		return err
	}
	if review.Reported {
		return nil
	}

	_, err = doc.Ref.Update(firebase.Context, []firestore.Update{
		{
			Path:  "reported",
			Value: true,
		},
	})
	if err != nil {
		return err
	}

	stats, err := fr.GetRatingStats(review.CourseID)
	if err != nil {
		return err
	}

	return fr.saveRatingStats(review.CourseID, reviews.RemoveFromAggregate(*stats, review.Rating))
}

func (fr *FirebaseRepository) saveRatingStats(courseID string, stats models.RatingStats) error {
	_, err := fr.firestoreClient.Collection(models.FirestoreCourseRatingsCollection).Doc(courseID).Set(firebase.Context, map[string]interface{}{
		"averageRating": stats.AverageRating,
		"totalReviews":  stats.TotalReviews,
	}, firestore.MergeAll)
	return err
}
