package router

import (
	"encoding/json"
	"net/http"

	"innovision/internal/auth"
	"innovision/internal/models"
	"innovision/internal/qerrors"
	repo "innovision/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func GamificationRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/stats", getStatsHandler)
	router.With(auth.AuthCtx()).Post("/stats", awardXPHandler)

	return router
}

// GET: /stats?userId=
func getStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, qerrors.InvalidBody.Error(), http.StatusBadRequest)
		return
	}

	stats, err := repo.Repository.GetStats(userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, stats)
}

// POST: /stats
func awardXPHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.AwardXPRequest

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

	// XP is always awarded to the caller, whatever the body says.
	req.UserID = user.ID
	req.UserName = user.DisplayName

	stats, err := repo.Repository.AwardXP(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, struct {
		Success bool                      `json:"success"`
		Stats   *models.GamificationStats `json:"stats"`
	}{true, stats})
}
