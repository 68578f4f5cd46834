package reminders

import (
	"errors"
	"testing"
	"time"

	"innovision/internal/models"
)

type fakeStore struct {
	users    []*models.GamificationStats
	roadmaps map[string]*models.Course
	youtube  map[string]*models.YouTubeCourse
	ingested map[string][]*models.IngestedCourse
	progress map[string]*models.Progress

	reminded      map[string]time.Time
	ingestedLimit int
}

func (s *fakeStore) InactiveUsers(cutoff time.Time) ([]*models.GamificationStats, error) {
	return s.users, nil
}

func (s *fakeStore) FirstIncompleteRoadmap(userID string) (*models.Course, error) {
	return s.roadmaps[userID], nil
}

func (s *fakeStore) FirstIncompleteYouTubeCourse(userID string) (*models.YouTubeCourse, error) {
	return s.youtube[userID], nil
}

func (s *fakeStore) IngestedCoursesByUser(userID string, limit int) ([]*models.IngestedCourse, error) {
	s.ingestedLimit = limit
	courses := s.ingested[userID]
	if len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}

func (s *fakeStore) GetProgress(courseID string, userID string) (*models.Progress, error) {
	if p, ok := s.progress[courseID]; ok {
		return p, nil
	}
	return &models.Progress{CompletedChapters: []int{}}, nil
}

func (s *fakeStore) MarkReminded(userID string, at time.Time) error {
	if s.reminded == nil {
		s.reminded = make(map[string]time.Time)
	}
	s.reminded[userID] = at
	return nil
}

type fakeSender struct {
	sent    []string
	failFor map[string]error
}

func (s *fakeSender) SendInactivityReminderEmail(email string, name string, courseTitle string) error {
	if err, ok := s.failFor[email]; ok {
		return err
	}
	s.sent = append(s.sent, email+"|"+courseTitle)
	return nil
}

func inactiveUser(email string) *models.GamificationStats {
	return &models.GamificationStats{UserID: email, UserName: "Test User"}
}

func TestRunPrefersRoadmap(t *testing.T) {
	store := &fakeStore{
		users:    []*models.GamificationStats{inactiveUser("a@example.com")},
		roadmaps: map[string]*models.Course{"a@example.com": {Title: "Go Basics"}},
		youtube:  map[string]*models.YouTubeCourse{"a@example.com": {Title: "Rust Talks", Progress: 20}},
		ingested: map[string][]*models.IngestedCourse{"a@example.com": {{ID: "c1", Title: "Linear Algebra"}}},
	}
	sender := &fakeSender{}

	report, err := Run(store, sender, time.Now())
	if err != nil {
		t.Fatalf("Expected run to succeed, got %v", err)
	}

	if len(report.Results) != 1 || report.Results[0].Status != StatusSent {
		t.Fatalf("Expected one sent result, got %+v", report.Results)
	}
	if report.Results[0].Course != "Go Basics" {
		t.Errorf("Expected the roadmap to win, got %q", report.Results[0].Course)
	}
	if _, ok := store.reminded["a@example.com"]; !ok {
		t.Error("Expected the inactivity clock to be reset after a successful send")
	}
}

func TestRunFallsBackToYouTubeCourse(t *testing.T) {
	store := &fakeStore{
		users:   []*models.GamificationStats{inactiveUser("a@example.com")},
		youtube: map[string]*models.YouTubeCourse{"a@example.com": {Title: "Rust Talks", Progress: 20}},
	}
	sender := &fakeSender{}

	report, _ := Run(store, sender, time.Now())
	if report.Results[0].Course != "Rust Talks" {
		t.Errorf("Expected the YouTube course, got %q", report.Results[0].Course)
	}
}

func TestRunFallsBackToIngestedCourse(t *testing.T) {
	store := &fakeStore{
		users: []*models.GamificationStats{inactiveUser("a@example.com")},
		ingested: map[string][]*models.IngestedCourse{"a@example.com": {
			{ID: "done", Title: "Finished Course"},
			{ID: "open", Title: "Open Course"},
		}},
		progress: map[string]*models.Progress{"done": {Progress: 100}},
	}
	sender := &fakeSender{}

	report, _ := Run(store, sender, time.Now())
	if report.Results[0].Course != "Open Course" {
		t.Errorf("Expected the first incomplete ingested course, got %q", report.Results[0].Course)
	}
	if store.ingestedLimit != maxIngestedScan {
		t.Errorf("Expected the ingested scan to be capped at %d, got %d", maxIngestedScan, store.ingestedLimit)
	}
}

func TestRunNoActiveCourses(t *testing.T) {
	store := &fakeStore{
		users:    []*models.GamificationStats{inactiveUser("a@example.com")},
		ingested: map[string][]*models.IngestedCourse{"a@example.com": {{ID: "done", Title: "Finished Course"}}},
		progress: map[string]*models.Progress{"done": {Progress: 100}},
	}
	sender := &fakeSender{}

	report, _ := Run(store, sender, time.Now())
	if report.Results[0].Status != StatusNoActiveCourses {
		t.Errorf("Expected no_active_courses, got %q", report.Results[0].Status)
	}
	if len(sender.sent) != 0 {
		t.Errorf("Expected no email for a user with nothing in flight, got %v", sender.sent)
	}
	if len(store.reminded) != 0 {
		t.Error("Expected the inactivity clock to be untouched when nothing was sent")
	}
}

func TestRunIsolatesSendFailures(t *testing.T) {
	store := &fakeStore{
		users: []*models.GamificationStats{inactiveUser("fail@example.com"), inactiveUser("ok@example.com")},
		roadmaps: map[string]*models.Course{
			"fail@example.com": {Title: "Course A"},
			"ok@example.com":   {Title: "Course B"},
		},
	}
	sender := &fakeSender{failFor: map[string]error{"fail@example.com": errors.New("smtp down")}}

	report, err := Run(store, sender, time.Now())
	if err != nil {
		t.Fatalf("Expected a failing user to not abort the run, got %v", err)
	}

	if report.ProcessedCount != 2 {
		t.Errorf("Expected 2 processed users, got %d", report.ProcessedCount)
	}
	if report.Results[0].Status != StatusFailed || report.Results[0].Error == "" {
		t.Errorf("Expected the first result to record the failure, got %+v", report.Results[0])
	}
	if report.Results[1].Status != StatusSent {
		t.Errorf("Expected the second user to still be processed, got %+v", report.Results[1])
	}
	if _, ok := store.reminded["fail@example.com"]; ok {
		t.Error("Expected a failed send to leave the inactivity clock alone")
	}
	if _, ok := store.reminded["ok@example.com"]; !ok {
		t.Error("Expected the successful send to reset the inactivity clock")
	}
}

func TestRunDefaultCourseTitles(t *testing.T) {
	store := &fakeStore{
		users:    []*models.GamificationStats{inactiveUser("a@example.com")},
		roadmaps: map[string]*models.Course{"a@example.com": {}},
	}
	sender := &fakeSender{}

	report, _ := Run(store, sender, time.Now())
	if report.Results[0].Course != "your roadmap" {
		t.Errorf("Expected an untitled roadmap to fall back to a generic name, got %q", report.Results[0].Course)
	}
}

func TestRunNoInactiveUsers(t *testing.T) {
	report, err := Run(&fakeStore{}, &fakeSender{}, time.Now())
	if err != nil {
		t.Fatalf("Expected an empty run to succeed, got %v", err)
	}
	if report.ProcessedCount != 0 || len(report.Results) != 0 {
		t.Errorf("Expected an empty report, got %+v", report)
	}
}
