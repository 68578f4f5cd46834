package router

import (
	"encoding/json"
	"net/http"

	"innovision/internal/auth"
	"innovision/internal/email"
	"innovision/internal/models"
	repo "innovision/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func IngestedCourseRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Course reads work anonymously; an authenticated caller additionally gets
	// their chapter completion state merged in.
	router.With(auth.TryAuthCtx()).Get("/{courseID}", getIngestedCourseHandler)
	router.Get("/{courseID}/chapters/{chapterID}", getChapterHandler)

	router.Route("/{courseID}/progress", func(r chi.Router) {
		r.Use(auth.AuthCtx())

		r.Get("/", getProgressHandler)
		r.Put("/", setChapterCompletionHandler)
	})

	return router
}

// GET: /{courseID}
func getIngestedCourseHandler(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	course, err := repo.Repository.GetIngestedCourse(courseID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	chapters, err := repo.Repository.GetChapters(courseID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	progress := &models.Progress{CompletedChapters: []int{}}
	if user, err := auth.GetUserFromRequest(r); err == nil {
		p, err := repo.Repository.GetProgress(courseID, user.ID)
		if err != nil {
			respondWithError(w, err)
			return
		}
		progress = p
	}

	for _, chapter := range chapters {
		chapter.IsCompleted = progress.HasChapter(chapter.ChapterNumber)
	}

	render.JSON(w, r, struct {
		Course   *models.IngestedCourse `json:"course"`
		Chapters []*models.Chapter      `json:"chapters"`
		Progress *models.Progress       `json:"progress"`
	}{course, chapters, progress})
}

// GET: /{courseID}/chapters/{chapterID}
func getChapterHandler(w http.ResponseWriter, r *http.Request) {
	chapter, err := repo.Repository.GetChapter(chi.URLParam(r, "courseID"), chi.URLParam(r, "chapterID"))
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, chapter)
}

// GET: /{courseID}/progress
func getProgressHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	progress, err := repo.Repository.GetProgress(chi.URLParam(r, "courseID"), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, progress)
}

// PUT: /{courseID}/progress
func setChapterCompletionHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.SetChapterCompletionRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	req.CourseID = chi.URLParam(r, "courseID")
	req.UserID = user.ID

	// Read the prior state so re-marking an already-completed chapter does not
	// re-award XP.
	before, err := repo.Repository.GetProgress(req.CourseID, req.UserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	hadChapter := before.HasChapter(req.ChapterNumber)

	progress, justCompleted, err := repo.Repository.SetChapterCompletion(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	if req.Completed && !hadChapter {
		_, err := repo.Repository.AwardXP(&models.AwardXPRequest{
			UserID:   user.ID,
			UserName: user.DisplayName,
			Action:   models.XPActionChapterCompleted,
		})
		if err != nil {
			glog.Warningf("failed to award chapter XP to %s: %v\n", user.ID, err)
		}
	} else {
		if err := repo.Repository.TouchLastActive(user.ID); err != nil {
			glog.Warningf("failed to update lastActive for %s: %v\n", user.ID, err)
		}
	}

	if justCompleted {
		go handleCourseCompletion(user, req.CourseID)
	}

	render.JSON(w, r, progress)
}

// handleCourseCompletion runs the followups to a course reaching 100%:
// course XP, a certificate, a congratulations email, and a notification.
// Everything is best effort; the progress write has already succeeded.
func handleCourseCompletion(user *models.User, courseID string) {
	course, err := repo.Repository.GetIngestedCourse(courseID)
	if err != nil {
		glog.Warningf("course completion followup failed for %s: %v\n", courseID, err)
		return
	}
	chapters, err := repo.Repository.GetChapters(courseID)
	if err != nil {
		glog.Warningf("failed to count chapters for %s: %v\n", courseID, err)
	}

	_, err = repo.Repository.AwardXP(&models.AwardXPRequest{
		UserID:   user.ID,
		UserName: user.DisplayName,
		Action:   models.XPActionCourseCompleted,
	})
	if err != nil {
		glog.Warningf("failed to award course XP to %s: %v\n", user.ID, err)
	}

	_, err = repo.Repository.IssueCertificate(&models.IssueCertificateRequest{
		UserID:       user.ID,
		UserName:     user.DisplayName,
		CourseID:     courseID,
		CourseTitle:  course.Title,
		ChapterCount: len(chapters),
	})
	if err != nil {
		glog.Warningf("failed to issue certificate to %s: %v\n", user.ID, err)
	}

	if err := email.NewClient().SendCourseCompletionEmail(user.ID, user.DisplayName, course.Title); err != nil {
		glog.Warningf("failed to send completion email to %s: %v\n", user.ID, err)
	}

	err = repo.Repository.AddNotification(&models.CreateNotificationRequest{
		UserID: user.ID,
		Title:  "Course completed!",
		Body:   "You finished " + course.Title + ". Your certificate is ready.",
		Type:   models.NotificationAchievement,
		Link:   "/certificates",
	})
	if err != nil {
		glog.Warningf("failed to add completion notification for %s: %v\n", user.ID, err)
	}
}
