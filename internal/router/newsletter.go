package router

import (
	"encoding/json"
	"net/http"

	"innovision/internal/models"
	repo "innovision/internal/repository"

	"github.com/go-chi/chi/v5"
)

func NewsletterRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Post("/", subscribeNewsletterHandler)

	return router
}

// POST: /
func subscribeNewsletterHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.SubscribeNewsletterRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = repo.Repository.SubscribeNewsletter(req.Email)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.WriteHeader(200)
	w.Write([]byte("Successfully subscribed " + req.Email))
}
