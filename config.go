package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	ContentPath      string
	ImagesDir        string
	DatabasePath     string
	DefaultLang      string
	ShutdownTimeout  time.Duration
	VisitorRetention time.Duration

	AdminUsername string
	AdminPassword string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string
}

// LoadConfig reads configuration from the environment, optionally seeded by a .env file.
func LoadConfig() (*Config, error) {
	// .env is optional when the variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		GinMode:       os.Getenv("GIN_MODE"),
		ContentPath:   os.Getenv("CONTENT_PATH"),
		ImagesDir:     os.Getenv("IMAGES_DIR"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
		DefaultLang:   os.Getenv("DEFAULT_LANG"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		ToEmail:       os.Getenv("TO_EMAIL"),
	}

	var err error
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.VisitorRetention, err = parseDuration("VISITOR_RETENTION", 365*24*time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		c.Port = "8080"
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: PORT must be numeric, got %q", c.Port)
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "./images"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./data/portfolio.db"
	}

	c.DefaultLang = strings.ToLower(strings.TrimSpace(c.DefaultLang))
	if c.DefaultLang == "" {
		c.DefaultLang = LangArabic
	}
	if !IsSupportedLanguage(c.DefaultLang) {
		return fmt.Errorf("config: DEFAULT_LANG %q: %w", c.DefaultLang, ErrUnsupportedLanguage)
	}

	if c.SMTPHost == "" {
		c.SMTPHost = "smtp.gmail.com"
	}
	if c.SMTPPort == "" {
		c.SMTPPort = "587"
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive")
	}
	if c.VisitorRetention <= 0 {
		return fmt.Errorf("config: VISITOR_RETENTION must be positive")
	}
	return nil
}

// SMTPConfigured reports whether contact notifications can be emailed.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.ToEmail != ""
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s invalid (%q): %w", key, raw, err)
	}
	return d, nil
}
