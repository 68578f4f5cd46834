package models

import "time"

var (
	FirestoreReviewsCollection       = "reviews"
	FirestoreCourseRatingsCollection = "courseRatings"
)

type ReviewSort string

const (
	SortNewest  ReviewSort = "newest"
	SortOldest  ReviewSort = "oldest"
	SortHighest ReviewSort = "highest"
	SortLowest  ReviewSort = "lowest"
	SortHelpful ReviewSort = "helpful"
)

// Review is a single user's review of a course. One review per (course, user)
// is enforced at the application layer. Reported reviews are soft-removed:
// they stay in the collection but are filtered from every listing.
type Review struct {
	ID           string    `json:"id" mapstructure:"id"`
	CourseID     string    `json:"courseId" mapstructure:"courseId"`
	UserID       string    `json:"userId" mapstructure:"userId"`
	UserName     string    `json:"userName" mapstructure:"userName"`
	Rating       int       `json:"rating" mapstructure:"rating"`
	Comment      string    `json:"comment" mapstructure:"comment"`
	Reported     bool      `json:"reported" mapstructure:"reported"`
	HelpfulCount int       `json:"helpfulCount" mapstructure:"helpfulCount"`
	CreatedAt    time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// RatingStats is the maintained per-course aggregate, stored separately from
// the reviews themselves.
type RatingStats struct {
	AverageRating float64 `json:"averageRating" mapstructure:"averageRating"`
	TotalReviews  int     `json:"totalReviews" mapstructure:"totalReviews"`
}

// CreateReviewRequest is the parameter struct for the CreateOrUpdateReview function.
type CreateReviewRequest struct {
	// Will be set from context
	CourseID string `json:",omitempty"`
	UserID   string `json:",omitempty"`
	UserName string `json:",omitempty"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// ReviewActionRequest is the parameter struct for the MarkReviewHelpful and
// ReportReview functions.
type ReviewActionRequest struct {
	CourseID string `json:",omitempty"`
	ReviewID string `json:",omitempty"`
}
