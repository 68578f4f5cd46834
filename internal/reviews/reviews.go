package reviews

import (
	"innovision/internal/models"
	"innovision/internal/qerrors"

	"cloud.google.com/go/firestore"
)

// SortKey maps a review sort option to its Firestore order clause.
func SortKey(sortBy models.ReviewSort) (string, firestore.Direction, error) {
	switch sortBy {
	case models.SortNewest:
		return "createdAt", firestore.Desc, nil
	case models.SortOldest:
		return "createdAt", firestore.Asc, nil
	case models.SortHighest:
		return "rating", firestore.Desc, nil
	case models.SortLowest:
		return "rating", firestore.Asc, nil
	case models.SortHelpful:
		return "helpfulCount", firestore.Desc, nil
	default:
		return "", 0, qerrors.InvalidSortError
	}
}

// ComputeDistribution counts reviews per integer rating bucket 1–5. It is
// recomputed from the given review set on every call, never cached.
func ComputeDistribution(reviews []*models.Review) map[int]int {
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, review := range reviews {
		if review.Rating >= 1 && review.Rating <= 5 {
			distribution[review.Rating]++
		}
	}

	return distribution
}

// AddToAggregate folds a new rating into the maintained per-course aggregate.
func AddToAggregate(stats models.RatingStats, rating int) models.RatingStats {
	total := stats.TotalReviews + 1
	return models.RatingStats{
		AverageRating: (stats.AverageRating*float64(stats.TotalReviews) + float64(rating)) / float64(total),
		TotalReviews:  total,
	}
}

// EditAggregate adjusts the aggregate when an existing review's rating changes.
func EditAggregate(stats models.RatingStats, oldRating int, newRating int) models.RatingStats {
	if stats.TotalReviews == 0 {
		return AddToAggregate(stats, newRating)
	}
	return models.RatingStats{
		AverageRating: (stats.AverageRating*float64(stats.TotalReviews) - float64(oldRating) + float64(newRating)) / float64(stats.TotalReviews),
		TotalReviews:  stats.TotalReviews,
	}
}

// RemoveFromAggregate takes a rating back out of the aggregate, used when a
// review is reported.
func RemoveFromAggregate(stats models.RatingStats, rating int) models.RatingStats {
	if stats.TotalReviews <= 1 {
		return models.RatingStats{}
	}
	total := stats.TotalReviews - 1
	return models.RatingStats{
		AverageRating: (stats.AverageRating*float64(stats.TotalReviews) - float64(rating)) / float64(total),
		TotalReviews:  total,
	}
}

// ValidateRating checks that a rating is an integer between 1 and 5.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return qerrors.InvalidRatingError
	}
	return nil
}
