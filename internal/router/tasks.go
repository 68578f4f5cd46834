package router

import (
	"net/http"
	"time"

	"innovision/internal/config"
	"innovision/internal/email"
	"innovision/internal/qerrors"
	"innovision/internal/reminders"
	repo "innovision/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func TaskRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Cron schedulers issue GET; POST supports manual triggering.
	router.Get("/reminders", runRemindersHandler)
	router.Post("/reminders", runRemindersHandler)

	return router
}

// GET|POST: /reminders
func runRemindersHandler(w http.ResponseWriter, r *http.Request) {
	// The scheduler authenticates with a shared key, not a user session.
	if secret := config.Config.CronSecret; secret != "" && r.Header.Get("x-cron-key") != secret {
		http.Error(w, qerrors.UnauthorizedError.Error(), http.StatusUnauthorized)
		return
	}

	report, err := reminders.Run(repo.Repository, email.NewClient(), time.Now())
	if err != nil {
		glog.Warningf("reminder run failed: %v\n", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, report)
}
