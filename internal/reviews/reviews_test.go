package reviews

import (
	"reflect"
	"testing"

	"innovision/internal/models"
	"innovision/internal/qerrors"

	"cloud.google.com/go/firestore"
)

func review(rating int) *models.Review {
	return &models.Review{Rating: rating}
}

func approximatelyEqual(a float64, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.00001
}

func TestComputeDistribution(t *testing.T) {
	list := []*models.Review{review(5), review(5), review(3), review(1), review(9)}

	got := ComputeDistribution(list)
	want := map[int]int{1: 1, 2: 0, 3: 1, 4: 0, 5: 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected distribution to be %v, got %v", want, got)
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	got := ComputeDistribution(nil)

	// Every bucket is present even with no reviews.
	want := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected empty distribution to be %v, got %v", want, got)
	}
}

func TestSortKey(t *testing.T) {
	cases := []struct {
		sortBy models.ReviewSort
		field  string
		dir    firestore.Direction
	}{
		{models.SortNewest, "createdAt", firestore.Desc},
		{models.SortOldest, "createdAt", firestore.Asc},
		{models.SortHighest, "rating", firestore.Desc},
		{models.SortLowest, "rating", firestore.Asc},
		{models.SortHelpful, "helpfulCount", firestore.Desc},
	}

	for _, c := range cases {
		field, dir, err := SortKey(c.sortBy)
		if err != nil {
			t.Errorf("Expected no error for %q, got %v", c.sortBy, err)
		}
		if field != c.field || dir != c.dir {
			t.Errorf("Expected %q to map to (%s, %v), got (%s, %v)", c.sortBy, c.field, c.dir, field, dir)
		}
	}
}

func TestSortKeyInvalid(t *testing.T) {
	if _, _, err := SortKey("trending"); err != qerrors.InvalidSortError {
		t.Errorf("Expected invalid sort error, got %v", err)
	}
}

func TestAddToAggregate(t *testing.T) {
	stats := AddToAggregate(models.RatingStats{}, 4)
	if !approximatelyEqual(stats.AverageRating, 4) || stats.TotalReviews != 1 {
		t.Errorf("Expected average 4 with 1 review, got %f with %d", stats.AverageRating, stats.TotalReviews)
	}

	stats = AddToAggregate(stats, 2)
	if !approximatelyEqual(stats.AverageRating, 3) || stats.TotalReviews != 2 {
		t.Errorf("Expected average 3 with 2 reviews, got %f with %d", stats.AverageRating, stats.TotalReviews)
	}
}

func TestEditAggregate(t *testing.T) {
	stats := models.RatingStats{AverageRating: 3, TotalReviews: 2}

	stats = EditAggregate(stats, 2, 4)
	if !approximatelyEqual(stats.AverageRating, 4) {
		t.Errorf("Expected average 4 after edit, got %f", stats.AverageRating)
	}
	if stats.TotalReviews != 2 {
		t.Errorf("Expected edit to keep 2 reviews, got %d", stats.TotalReviews)
	}
}

func TestEditAggregateEmpty(t *testing.T) {
	stats := EditAggregate(models.RatingStats{}, 1, 5)
	if !approximatelyEqual(stats.AverageRating, 5) || stats.TotalReviews != 1 {
		t.Errorf("Expected edit on empty aggregate to behave like an add, got %f with %d", stats.AverageRating, stats.TotalReviews)
	}
}

func TestRemoveFromAggregate(t *testing.T) {
	stats := models.RatingStats{AverageRating: 3, TotalReviews: 2}

	stats = RemoveFromAggregate(stats, 2)
	if !approximatelyEqual(stats.AverageRating, 4) || stats.TotalReviews != 1 {
		t.Errorf("Expected average 4 with 1 review after removal, got %f with %d", stats.AverageRating, stats.TotalReviews)
	}

	stats = RemoveFromAggregate(stats, 4)
	if stats.AverageRating != 0 || stats.TotalReviews != 0 {
		t.Errorf("Expected removing the last review to zero the aggregate, got %f with %d", stats.AverageRating, stats.TotalReviews)
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if err := ValidateRating(rating); err != nil {
			t.Errorf("Expected rating %d to be valid, got %v", rating, err)
		}
	}

	for _, rating := range []int{0, -1, 6, 100} {
		if err := ValidateRating(rating); err != qerrors.InvalidRatingError {
			t.Errorf("Expected rating %d to be invalid, got %v", rating, err)
		}
	}
}
