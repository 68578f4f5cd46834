package router

import (
	"net/http"

	"innovision/internal/images"
	"innovision/internal/qerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func ImageRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/search", searchImageHandler)

	return router
}

// GET: /search?query=
func searchImageHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, qerrors.InvalidBody.Error(), http.StatusBadRequest)
		return
	}

	// FetchImage never fails; every error path degrades to the seeded fallback.
	image := images.NewResolver().FetchImage(query)

	render.JSON(w, r, struct {
		Success bool          `json:"success"`
		Image   *images.Image `json:"image"`
	}{true, image})
}
