package reminders

import (
	"time"

	"innovision/internal/models"

	"github.com/golang/glog"
)

// InactivityWindow is how long a user must be inactive before a reminder is
// considered.
const InactivityWindow = 3 * 24 * time.Hour

// maxIngestedScan caps how many of a user's ingested courses are checked for
// an incomplete one.
const maxIngestedScan = 10

type Status string

const (
	StatusSent            Status = "sent"
	StatusFailed          Status = "failed"
	StatusNoActiveCourses Status = "no_active_courses"
)

// Result records the outcome of processing a single user.
type Result struct {
	Email  string `json:"email"`
	Status Status `json:"status"`
	Course string `json:"course,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Report summarizes a full run, one result per processed user.
type Report struct {
	ProcessedCount int      `json:"processedCount"`
	Results        []Result `json:"results"`
}

// Store is the slice of the repository the reminder job reads and writes.
type Store interface {
	// InactiveUsers returns every user whose lastActive predates the cutoff.
	InactiveUsers(cutoff time.Time) ([]*models.GamificationStats, error)
	// FirstIncompleteRoadmap returns an arbitrary incomplete owned course, or nil.
	FirstIncompleteRoadmap(userID string) (*models.Course, error)
	// FirstIncompleteYouTubeCourse returns an external course below 100%, or nil.
	FirstIncompleteYouTubeCourse(userID string) (*models.YouTubeCourse, error)
	// IngestedCoursesByUser returns up to limit of the user's ingested courses.
	IngestedCoursesByUser(userID string, limit int) ([]*models.IngestedCourse, error)
	// GetProgress returns the user's progress for an ingested course.
	GetProgress(courseID string, userID string) (*models.Progress, error)
	// MarkReminded resets the user's inactivity clock after a successful send.
	MarkReminded(userID string, at time.Time) error
}

// Sender delivers the inactivity email.
type Sender interface {
	SendInactivityReminderEmail(email string, name string, courseTitle string) error
}

// Run scans for users inactive past the window and sends each at most one
// reminder naming one of their unfinished courses. A successful send resets
// the user's inactivity clock so subsequent daily runs don't re-notify them.
// Failures are isolated per user; the run never aborts on a single user.
func Run(store Store, sender Sender, now time.Time) (*Report, error) {
	users, err := store.InactiveUsers(now.Add(-InactivityWindow))
	if err != nil {
		return nil, err
	}

	report := &Report{
		ProcessedCount: len(users),
		Results:        make([]Result, 0, len(users)),
	}

	for _, user := range users {
		courseTitle, err := findActiveCourse(store, user.UserID)
		if err != nil {
			report.Results = append(report.Results, Result{
				Email:  user.UserID,
				Status: StatusFailed,
				Error:  err.Error(),
			})
			continue
		}

		if courseTitle == "" {
			report.Results = append(report.Results, Result{
				Email:  user.UserID,
				Status: StatusNoActiveCourses,
			})
			continue
		}

		if err := sender.SendInactivityReminderEmail(user.UserID, user.UserName, courseTitle); err != nil {
			glog.Warningf("failed to send reminder to %s: %v\n", user.UserID, err)
			report.Results = append(report.Results, Result{
				Email:  user.UserID,
				Status: StatusFailed,
				Error:  err.Error(),
			})
			continue
		}

		if err := store.MarkReminded(user.UserID, now); err != nil {
			glog.Warningf("failed to reset inactivity clock for %s: %v\n", user.UserID, err)
		}

		report.Results = append(report.Results, Result{
			Email:  user.UserID,
			Status: StatusSent,
			Course: courseTitle,
		})
	}

	return report, nil
}

// findActiveCourse picks exactly one unfinished course for the user, checking
// in strict priority order: owned roadmaps, then external-platform courses,
// then the first few ingested courses. Returns "" when everything is done.
func findActiveCourse(store Store, userID string) (string, error) {
	roadmap, err := store.FirstIncompleteRoadmap(userID)
	if err != nil {
		return "", err
	}
	if roadmap != nil {
		if roadmap.Title == "" {
			return "your roadmap", nil
		}
		return roadmap.Title, nil
	}

	ytCourse, err := store.FirstIncompleteYouTubeCourse(userID)
	if err != nil {
		return "", err
	}
	if ytCourse != nil {
		if ytCourse.Title == "" {
			return "your YouTube course", nil
		}
		return ytCourse.Title, nil
	}

	ingested, err := store.IngestedCoursesByUser(userID, maxIngestedScan)
	if err != nil {
		return "", err
	}
	for _, course := range ingested {
		progress, err := store.GetProgress(course.ID, userID)
		if err != nil {
			return "", err
		}
		if progress.Progress < 100 {
			if course.Title == "" {
				return "your ingested course", nil
			}
			return course.Title, nil
		}
	}

	return "", nil
}
