package router

import (
	"encoding/json"
	"net/http"

	"innovision/internal/auth"
	"innovision/internal/models"
	repo "innovision/internal/repository"
	"innovision/internal/reviews"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func ReviewRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/{courseID}", listReviewsHandler)
	router.With(auth.AuthCtx()).Post("/{courseID}", createReviewHandler)
	router.With(auth.AuthCtx()).Post("/{courseID}/{reviewID}/helpful", markReviewHelpfulHandler)
	router.With(auth.AuthCtx()).Post("/{courseID}/{reviewID}/report", reportReviewHandler)

	return router
}

// GET: /{courseID}
func listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	sortBy := models.ReviewSort(r.URL.Query().Get("sortBy"))
	if sortBy == "" {
		sortBy = models.SortNewest
	}

	list, err := repo.Repository.ListReviews(courseID, sortBy)
	if err != nil {
		respondWithError(w, err)
		return
	}

	stats, err := repo.Repository.GetRatingStats(courseID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, struct {
		Reviews       []*models.Review `json:"reviews"`
		AverageRating float64          `json:"averageRating"`
		TotalReviews  int              `json:"totalReviews"`
		Distribution  map[int]int      `json:"distribution"`
	}{list, stats.AverageRating, stats.TotalReviews, reviews.ComputeDistribution(list)})
}

// POST: /{courseID}
func createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.CreateReviewRequest

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
	req.UserName = user.DisplayName

	review, created, err := repo.Repository.CreateOrUpdateReview(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	// Only a brand-new review earns XP; editing an existing one does not.
	if created {
		_, err := repo.Repository.AwardXP(&models.AwardXPRequest{
			UserID:   user.ID,
			UserName: user.DisplayName,
			Action:   models.XPActionReviewSubmitted,
		})
		if err != nil {
			glog.Warningf("failed to award review XP to %s: %v\n", user.ID, err)
		}
	}

	render.JSON(w, r, review)
}

// POST: /{courseID}/{reviewID}/helpful
func markReviewHelpfulHandler(w http.ResponseWriter, r *http.Request) {
	req := &models.ReviewActionRequest{
		CourseID: chi.URLParam(r, "courseID"),
		ReviewID: chi.URLParam(r, "reviewID"),
	}

	err := repo.Repository.MarkReviewHelpful(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.WriteHeader(200)
	w.Write([]byte("Successfully marked review " + req.ReviewID + " helpful"))
}

// POST: /{courseID}/{reviewID}/report
func reportReviewHandler(w http.ResponseWriter, r *http.Request) {
	req := &models.ReviewActionRequest{
		CourseID: chi.URLParam(r, "courseID"),
		ReviewID: chi.URLParam(r, "reviewID"),
	}

	err := repo.Repository.ReportReview(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.WriteHeader(200)
	w.Write([]byte("Successfully reported review " + req.ReviewID))
}
