package models

import "time"

var (
	FirestoreRoadmapsCollection         = "roadmaps"
	FirestorePublishedCoursesCollection = "published_courses"
	FirestoreYouTubeCoursesCollection   = "youtube-courses"
)

// CourseChapter is a chapter entry embedded in an owned course document.
type CourseChapter struct {
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// Course is a user-owned course ("roadmap") stored under the creating user's
// document. The published mirror in published_courses is derived from it.
type Course struct {
	ID          string          `json:"id" mapstructure:"id"`
	Title       string          `json:"courseTitle" mapstructure:"courseTitle"`
	Description string          `json:"courseDescription" mapstructure:"courseDescription"`
	Chapters    []CourseChapter `json:"chapters" mapstructure:"chapters"`
	Difficulty  string          `json:"difficulty" mapstructure:"difficulty"`
	IsPublic    bool            `json:"isPublic" mapstructure:"isPublic"`
	Completed   bool            `json:"completed" mapstructure:"completed"`
	ShareCount  int             `json:"shareCount" mapstructure:"shareCount"`
	CreatedBy   string          `json:"createdBy" mapstructure:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt" mapstructure:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" mapstructure:"updatedAt"`
}

// PublishedCourse is the denormalized copy of a public owned course, keyed by
// the same document ID in the global published_courses collection.
type PublishedCourse struct {
	ID          string          `json:"id" mapstructure:"id"`
	Title       string          `json:"courseTitle" mapstructure:"courseTitle"`
	Description string          `json:"courseDescription" mapstructure:"courseDescription"`
	Chapters    []CourseChapter `json:"chapters" mapstructure:"chapters"`
	Difficulty  string          `json:"difficulty" mapstructure:"difficulty"`
	CreatedBy   string          `json:"createdBy" mapstructure:"createdBy"`
	AuthorName  string          `json:"authorName" mapstructure:"authorName"`
	AuthorImage string          `json:"authorImage,omitempty" mapstructure:"authorImage"`
	Status      string          `json:"status" mapstructure:"status"`
	PublishedAt time.Time       `json:"publishedAt" mapstructure:"publishedAt"`
}

// YouTubeCourse is a course followed on an external platform, stored under the
// user's document with a plain progress percentage.
type YouTubeCourse struct {
	ID       string `json:"id" mapstructure:"id"`
	Title    string `json:"title" mapstructure:"title"`
	Progress int    `json:"progress" mapstructure:"progress"`
}

// CreateCourseRequest is the parameter struct for the CreateCourse function.
type CreateCourseRequest struct {
	// Will be set from context
	CreatedBy   *User           `json:",omitempty"`
	Title       string          `json:"courseTitle"`
	Description string          `json:"courseDescription"`
	Chapters    []CourseChapter `json:"chapters"`
	Difficulty  string          `json:"difficulty"`
}

// GetCourseRequest is the parameter struct for the GetCourse function.
type GetCourseRequest struct {
	CourseID string `json:"courseID"`
	OwnerID  string `json:",omitempty"`
}

// DeleteCourseRequest is the parameter struct for the DeleteCourse function.
type DeleteCourseRequest struct {
	CourseID string `json:"courseID"`
	OwnerID  string `json:",omitempty"`
}

// SetCourseVisibilityRequest is the parameter struct for the SetCourseVisibility function.
type SetCourseVisibilityRequest struct {
	// Will be set from context
	Owner    *User  `json:",omitempty"`
	CourseID string `json:",omitempty"`
	IsPublic bool   `json:"isPublic"`
}

// PublishCourseRequest is the parameter struct for the PublishCourse function.
type PublishCourseRequest struct {
	// Will be set from context
	CreatedBy   *User           `json:",omitempty"`
	Title       string          `json:"courseTitle"`
	Description string          `json:"courseDescription"`
	Chapters    []CourseChapter `json:"chapters"`
	Difficulty  string          `json:"difficulty"`
}
