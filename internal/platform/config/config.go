package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config captures everything the server reads from the environment. A .env
// file is honored when present so local development mirrors production.
type Config struct {
	Addr string

	// DatabaseURL selects the Postgres store. Empty means the in-memory
	// store, which is enough for local form/dashboard work.
	DatabaseURL string

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	EmailFrom     string
	EmailFromName string

	// RedisURL selects the distributed signup rate-limit backend. Empty
	// falls back to the in-process sliding window.
	RedisURL string

	// AdminPanelPath is the deliberately obscure dashboard route.
	AdminPanelPath string

	// Signup rate limit: at most SignupRateLimit requests per IP per window.
	SignupRateLimit  int
	SignupRateWindow time.Duration

	// Production suppresses the boot-time SMTP connectivity probe.
	Production bool
}

// FromEnv builds the configuration from environment variables so main stays
// lean. Only DATABASE_URL and the SMTP settings matter for a real deployment;
// everything else has a workable default.
func FromEnv() Config {
	// .env is optional; real environments inject variables directly.
	_ = godotenv.Load()

	addr := os.Getenv("PORT")
	if addr == "" {
		addr = "3000"
	}

	adminPath := os.Getenv("ADMIN_PANEL_PATH")
	if adminPath == "" {
		adminPath = "/linksupersecretodaswsgroup"
	}

	return Config{
		Addr:             ":" + addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         intEnv("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		EmailFromName:    os.Getenv("EMAIL_FROM_NAME"),
		RedisURL:         os.Getenv("REDIS_URL"),
		AdminPanelPath:   adminPath,
		SignupRateLimit:  intEnv("SIGNUP_RATE_LIMIT", 10),
		SignupRateWindow: durationEnv("SIGNUP_RATE_WINDOW", time.Minute),
		Production:       os.Getenv("APP_ENV") == "production",
	}
}

// SMTPConfigured reports whether a real mail relay was provided; without one
// the server runs with the no-op dispatcher.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.EmailFrom != ""
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}
