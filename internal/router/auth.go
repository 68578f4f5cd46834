package router

import (
	"encoding/json"
	"net/http"

	"innovision/internal/auth"
	"innovision/internal/config"
	"innovision/internal/models"
	repo "innovision/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func AuthRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Auth routes that require authentication
	router.Route("/", func(r chi.Router) {
		r.Use(auth.AuthCtx())

		// Information about the current user
		r.Get("/me", getMeHandler)
		r.Get("/{userID}", getUserHandler)

		// Update the current user's information
		r.Post("/update", updateUserHandler)

		// Notification clearing
		r.Post("/clearNotification", clearNotificationHandler)
		r.Post("/clearAllNotifications", clearAllNotificationsHandler)
	})

	// Alter the current session. No auth middlewares required.
	router.Post("/session", createSessionHandler)
	router.Post("/signout", signOutHandler)

	return router
}

// GET: /me
func getMeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	render.JSON(w, r, struct {
		*models.Profile
		ID string `json:"id"`
	}{user.Profile, user.ID})
}

// GET: /{userID}
func getUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	user, err := repo.Repository.GetUserByID(userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	render.JSON(w, r, user)
}

// POST: /update
func updateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.UpdateUserRequest

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
	req.UserID = user.ID

	err = repo.Repository.UpdateUser(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.WriteHeader(200)
	_, err = w.Write([]byte("successfully edited user " + req.UserID))
	if err != nil {
		glog.Warningf("failed to write response: %v\n", err)
		return
	}
}

// POST: /session
func createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Set session expiration to 5 days.
	expiresIn := config.Config.SessionCookieExpiration

	// Creating the session cookie also verifies the ID token. The session
	// cookie carries the same claims as the ID token.
	cookie, err := repo.Repository.CreateSessionCookie(req.Token, expiresIn)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// A session request without an existing cookie is a fresh sign-in, which
	// greets the user. Best effort, never blocks the response.
	if _, err := r.Cookie(config.Config.SessionCookieName); err != nil {
		if user, err := repo.Repository.VerifyBearerToken(req.Token); err == nil {
			go func() {
				err := repo.Repository.AddNotification(&models.CreateNotificationRequest{
					UserID: user.ID,
					Title:  "Welcome back!",
					Body:   "Pick up where you left off and keep your learning streak going.",
					Type:   models.NotificationSystem,
				})
				if err != nil {
					glog.Warningf("failed to add welcome notification for %s: %v\n", user.ID, err)
				}
			}()
		}
	}

	var sameSite http.SameSite
	if config.Config.IsHTTPS {
		sameSite = http.SameSiteNoneMode
	} else {
		sameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.Config.SessionCookieName,
		Value:    cookie,
		MaxAge:   int(expiresIn.Seconds()),
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   config.Config.IsHTTPS,
		Path:     "/",
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
}

// POST: /signout
func signOutHandler(w http.ResponseWriter, r *http.Request) {
	var sameSite http.SameSite
	if config.Config.IsHTTPS {
		sameSite = http.SameSiteNoneMode
	} else {
		sameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.Config.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   config.Config.IsHTTPS,
		Path:     "/",
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
}

// POST: /clearNotification
func clearNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.ClearNotificationRequest

	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.UserID = user.ID

	err = repo.Repository.ClearNotification(req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.WriteHeader(200)
	w.Write([]byte("Successfully cleared notification"))
}

// POST: /clearAllNotifications
func clearAllNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	req := models.ClearAllNotificationsRequest{UserID: user.ID}

	err = repo.Repository.ClearAllNotifications(&req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.WriteHeader(200)
	w.Write([]byte("Successfully cleared all notifications"))
}
