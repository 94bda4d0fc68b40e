package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// It is loaded once at process start and treated as read-only afterwards.
type Config struct {
	SiteTitle  string
	HelpFAQURL string

	SessionSecret string
	APIKey        string

	DBUrl  string
	DBNs   string
	DBDb   string
	DBUser string
	DBPass string

	BindAddr string
	Debug    bool
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		SiteTitle:     getenvDefault("SITE_TITLE", "standup"),
		HelpFAQURL:    getenvDefault("HELP_FAQ_URL", "https://github.com/freddyb/standup/wiki/FAQ"),
		SessionSecret: os.Getenv("SECRET_KEY"),
		APIKey:        os.Getenv("API_KEY"),
		DBUrl:         os.Getenv("DATABASE_URL"),
		DBUser:        os.Getenv("SURREAL_USER"),
		DBPass:        os.Getenv("SURREAL_PASS"),
		DBNs:          getenvDefault("SURREAL_NS", "standup"),
		DBDb:          getenvDefault("SURREAL_DB", "standup"),
		BindAddr:      getenvDefault("BIND_ADDR", ":8080"),
		Debug:         os.Getenv("DEBUG") == "True",
	}

	if cfg.SessionSecret == "" || cfg.DBUrl == "" {
		log.Fatal("Required environment variables SECRET_KEY or DATABASE_URL are not set.")
	}

	return cfg
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
