package models

import "time"

var (
	FirestoreIngestedCoursesCollection = "ingested_courses"
	FirestoreChaptersCollection        = "chapters"
	FirestoreProgressCollection        = "progress"
)

// IngestedCourse is a course ingested from external content. Chapters and
// per-user progress live in subcollections under the course document.
type IngestedCourse struct {
	ID          string                 `json:"id" mapstructure:"id"`
	Title       string                 `json:"title" mapstructure:"title"`
	Description string                 `json:"description" mapstructure:"description"`
	UserID      string                 `json:"userId" mapstructure:"userId"`
	Source      string                 `json:"source" mapstructure:"source"`
	Status      string                 `json:"status" mapstructure:"status"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" mapstructure:"metadata"`
	CreatedAt   time.Time              `json:"createdAt" mapstructure:"createdAt"`
}

// Chapter belongs to exactly one ingested course.
type Chapter struct {
	ID            string `json:"id" mapstructure:"id"`
	ChapterNumber int    `json:"chapterNumber" mapstructure:"chapterNumber"`
	Title         string `json:"title" mapstructure:"title"`
	Summary       string `json:"summary" mapstructure:"summary"`
	Content       string `json:"content,omitempty" mapstructure:"content"`
	WordCount     int    `json:"wordCount" mapstructure:"wordCount"`
	Order         int    `json:"order" mapstructure:"order"`
	PrevChapterID string `json:"prevChapterId,omitempty" mapstructure:"prevChapterId"`
	NextChapterID string `json:"nextChapterId,omitempty" mapstructure:"nextChapterId"`

	// IsCompleted is derived from the caller's progress record, never stored.
	IsCompleted bool `json:"isCompleted" mapstructure:"-"`
}

// Progress is the per-(course, user) completion state. CompletedChapters has
// set semantics over chapter numbers; Progress is the stored percentage and is
// kept consistent with the set by callers on every write.
type Progress struct {
	Progress          int       `json:"progress" mapstructure:"progress"`
	CompletedChapters []int     `json:"completedChapters" mapstructure:"completedChapters"`
	UpdatedAt         time.Time `json:"updatedAt" mapstructure:"updatedAt"`
}

// HasChapter reports whether the given chapter number is in the completed set.
func (p *Progress) HasChapter(chapterNumber int) bool {
	for _, n := range p.CompletedChapters {
		if n == chapterNumber {
			return true
		}
	}
	return false
}

// SetChapter adds or removes a chapter number from the completed set. Adding a
// number already present is a no-op, as is removing an absent one.
func (p *Progress) SetChapter(chapterNumber int, completed bool) {
	if completed {
		if !p.HasChapter(chapterNumber) {
			p.CompletedChapters = append(p.CompletedChapters, chapterNumber)
		}
		return
	}

	filtered := p.CompletedChapters[:0]
	for _, n := range p.CompletedChapters {
		if n != chapterNumber {
			filtered = append(filtered, n)
		}
	}
	p.CompletedChapters = filtered
}

// Percentage computes the completion percentage from the completed set and
// the course's total chapter count.
func (p *Progress) Percentage(totalChapters int) int {
	if totalChapters <= 0 {
		return 0
	}
	pct := len(p.CompletedChapters) * 100 / totalChapters
	if pct > 100 {
		pct = 100
	}
	return pct
}

// GetProgressRequest is the parameter struct for the GetProgress function.
type GetProgressRequest struct {
	CourseID string `json:",omitempty"`
	UserID   string `json:",omitempty"`
}

// SetChapterCompletionRequest is the parameter struct for the SetChapterCompletion function.
type SetChapterCompletionRequest struct {
	// Will be set from context
	CourseID      string `json:",omitempty"`
	UserID        string `json:",omitempty"`
	ChapterNumber int    `json:"chapterNumber"`
	Completed     bool   `json:"completed"`
}
