package router

import (
	"net/http"

	"innovision/internal/models"
	"innovision/internal/qerrors"
	repo "innovision/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func CertificateRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Certificates are shareable by design, so both routes are public.
	router.Get("/{userID}", listCertificatesHandler)
	router.Get("/verify/{certificateID}", verifyCertificateHandler)

	return router
}

// GET: /{userID}
func listCertificatesHandler(w http.ResponseWriter, r *http.Request) {
	certificates, err := repo.Repository.ListCertificates(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, struct {
		Success      bool                  `json:"success"`
		Certificates []*models.Certificate `json:"certificates"`
	}{true, certificates})
}

// GET: /verify/{certificateID}
func verifyCertificateHandler(w http.ResponseWriter, r *http.Request) {
	certificate, err := repo.Repository.VerifyCertificate(chi.URLParam(r, "certificateID"))
	if err == qerrors.CertificateNotFoundError {
		// An unknown ID is a negative verification result, not an error.
		render.JSON(w, r, struct {
			Success bool `json:"success"`
			Valid   bool `json:"valid"`
		}{true, false})
		return
	}
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, struct {
		Success     bool                      `json:"success"`
		Valid       bool                      `json:"valid"`
		Certificate *models.PublicCertificate `json:"certificate"`
	}{true, true, certificate})
}
