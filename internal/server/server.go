package server

import (
	"fmt"
	"log"
	"net/http"

	"innovision/internal/config"
	rtr "innovision/internal/router"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Logger, // Log API Request Calls
	)

	router.Route("/", func(r chi.Router) {
		r.Mount("/", rtr.HealthRoutes())
	})

	router.Route("/v1", func(r chi.Router) {
		r.Mount("/users", rtr.AuthRoutes())
		r.Mount("/courses", rtr.CourseRoutes())
		r.Mount("/studio", rtr.StudioRoutes())
		r.Mount("/ingested-courses", rtr.IngestedCourseRoutes())
		r.Mount("/certificates", rtr.CertificateRoutes())
		r.Mount("/reviews", rtr.ReviewRoutes())
		r.Mount("/gamification", rtr.GamificationRoutes())
		r.Mount("/images", rtr.ImageRoutes())
		r.Mount("/newsletter", rtr.NewsletterRoutes())
		r.Mount("/tasks", rtr.TaskRoutes())
	})

	return router
}

func Start() {
	if config.Config == nil {
		log.Panic("❌ Missing or invalid configuration!")
	}

	router := Routes()
	c := cors.New(cors.Options{
		AllowedOrigins:   config.Config.AllowedOrigins,
		AllowedHeaders:   []string{"Cookie", "Content-Type", "Authorization", "x-cron-key"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)
	log.Printf("Server is listening on port %v\n", config.Config.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", config.Config.Port), handler))
}
