package router

import (
	"encoding/json"
	"net/http"

	"innovision/internal/auth"
	"innovision/internal/models"
	repo "innovision/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func CourseRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Owned course routes, always scoped to the authenticated caller.
	router.Route("/", func(r chi.Router) {
		r.Use(auth.AuthCtx())

		r.Post("/", createCourseHandler)
		r.Get("/{courseID}", getCourseHandler)
		r.Delete("/{courseID}", deleteCourseHandler)
		r.Post("/{courseID}/visibility", setCourseVisibilityHandler)
	})

	// Public read, no auth required.
	router.Get("/public/{courseID}", getPublicCourseHandler)

	return router
}

func StudioRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.With(auth.AuthCtx()).Post("/publish", publishCourseHandler)

	return router
}

// POST: /
func createCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.CreateCourseRequest

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
	req.CreatedBy = user

	course, err := repo.Repository.CreateCourse(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, course)
}

// GET: /{courseID}
func getCourseHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	course, err := repo.Repository.GetCourse(&models.GetCourseRequest{
		CourseID: chi.URLParam(r, "courseID"),
		OwnerID:  user.ID,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, course)
}

// DELETE: /{courseID}
func deleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	courseID := chi.URLParam(r, "courseID")
	err = repo.Repository.DeleteCourse(&models.DeleteCourseRequest{
		CourseID: courseID,
		OwnerID:  user.ID,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.WriteHeader(200)
	w.Write([]byte("Successfully deleted course " + courseID))
}

// POST: /{courseID}/visibility
func setCourseVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.SetCourseVisibilityRequest

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
	req.Owner = user
	req.CourseID = chi.URLParam(r, "courseID")

	err = repo.Repository.SetCourseVisibility(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, struct {
		Success  bool `json:"success"`
		IsPublic bool `json:"isPublic"`
	}{true, req.IsPublic})
}

// GET: /public/{courseID}
func getPublicCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := repo.Repository.GetPublicCourse(chi.URLParam(r, "courseID"))
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, struct {
		*models.PublishedCourse
		ChapterCount int `json:"chapterCount"`
	}{course, len(course.Chapters)})
}

// POST: /publish
func publishCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.PublishCourseRequest

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
	req.CreatedBy = user

	courseID, err := repo.Repository.PublishCourse(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	err = repo.Repository.AddNotification(&models.CreateNotificationRequest{
		UserID: user.ID,
		Title:  "Your course is live!",
		Body:   req.Title + " is now published and visible to everyone.",
		Type:   models.NotificationAchievement,
		Link:   "/course/" + courseID,
	})
	if err != nil {
		glog.Warningf("failed to add publish notification for %s: %v\n", user.ID, err)
	}

	render.JSON(w, r, struct {
		Success  bool   `json:"success"`
		CourseID string `json:"courseId"`
	}{true, courseID})
}
