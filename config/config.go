package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
// Connection strings and mail credentials are never hard-coded.
type Config struct {
	Port     string
	MongoURI string
	DBName   string

	UploadDir     string
	MaxUploadMB   int64
	LatestLimit   int64
	PublicBaseURL string

	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPass        string
	MailFrom        string
	InquiryNotifyTo string
}

// Load reads .env if present, then the environment. MONGO_URI and
// DB_NAME have no sensible default and are required.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:            GetEnv("PORT", "5000"),
		MongoURI:        os.Getenv("MONGO_URI"),
		DBName:          os.Getenv("DB_NAME"),
		UploadDir:       GetEnv("UPLOAD_DIR", "./public/photos"),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 20),
		LatestLimit:     getEnvInt("LATEST_LIMIT", 12),
		PublicBaseURL:   GetEnv("PUBLIC_BASE_URL", ""),
		SMTPHost:        GetEnv("SMTP_HOST", ""),
		SMTPPort:        GetEnv("SMTP_PORT", "587"),
		SMTPUser:        GetEnv("SMTP_USER", ""),
		SMTPPass:        GetEnv("SMTP_PASS", ""),
		MailFrom:        GetEnv("MAIL_FROM", ""),
		InquiryNotifyTo: GetEnv("INQUIRY_NOTIFY_TO", ""),
	}

	if cfg.MongoURI == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("MONGO_URI and DB_NAME must be set")
	}
	if cfg.LatestLimit < 1 {
		return nil, fmt.Errorf("LATEST_LIMIT must be at least 1")
	}

	return cfg, nil
}

// MailConfigured reports whether enough SMTP settings are present to
// attempt outbound notifications.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.MailFrom != "" && c.InquiryNotifyTo != ""
}

// SMTPAddr returns the host:port the mailer dials.
func (c *Config) SMTPAddr() string {
	return c.SMTPHost + ":" + c.SMTPPort
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
