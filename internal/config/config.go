package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var Config *ServerConfig

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string
	// SessionCookieName is the name to use for the session cookie.
	SessionCookieName string
	// SessionCookieExpiration is the amount of time a session cookie is valid. Max 5 days.
	SessionCookieExpiration time.Duration
	// IsHTTPS controls the Secure/SameSite attributes on the session cookie.
	IsHTTPS bool
	// Port is the port the server should run on.
	Port int

	// AppURL is the public URL of the frontend, used in email templates.
	AppURL string

	// CronSecret gates the reminder task endpoint. If empty, the endpoint is
	// left open.
	CronSecret string

	// Brevo transactional email settings.
	BrevoAPIKey string
	SenderName  string
	SenderEmail string

	// UnsplashAccessKey enables live image search. If empty, the image
	// resolver always uses the seeded fallback.
	UnsplashAccessKey string

	// FirebaseCredentialsFile is the path to the service account key.
	FirebaseCredentialsFile string
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:          []string{"http://localhost:3000"},
		SessionCookieName:       "session",
		SessionCookieExpiration: time.Hour * 24 * 5,
		IsHTTPS:                 false,
		Port:                    8080,
		AppURL:                  "http://localhost:3000",
		SenderName:              "Innovision",
		SenderEmail:             "noreply@innovision.app",
		FirebaseCredentialsFile: "firebase-config.json",
	}
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("🙂️ No .env file found. Reading configuration from the environment.")
	}

	config := DefaultConfig()

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Panicf("❌ Invalid PORT value %q: %v\n", port, err)
		}
		config.Port = p
	}
	if os.Getenv("HTTPS") == "true" {
		config.IsHTTPS = true
	}
	if appURL := os.Getenv("APP_URL"); appURL != "" {
		config.AppURL = appURL
	}
	if sender := os.Getenv("SENDER_EMAIL"); sender != "" {
		config.SenderEmail = sender
	}
	if name := os.Getenv("SENDER_NAME"); name != "" {
		config.SenderName = name
	}
	if creds := os.Getenv("FIREBASE_CREDENTIALS_FILE"); creds != "" {
		config.FirebaseCredentialsFile = creds
	}

	config.CronSecret = os.Getenv("CRON_SECRET")
	config.BrevoAPIKey = os.Getenv("BREVO_API_KEY")
	config.UnsplashAccessKey = os.Getenv("UNSPLASH_ACCESS_KEY")

	if config.CronSecret == "" {
		log.Println("⚠️ No CRON_SECRET configured. The reminder task endpoint is unprotected.")
	}

	Config = config
}
