package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-sourced settings. It is constructed once in main
// and passed to components at construction time; missing optional settings
// (SMTP, generation API) disable the corresponding feature instead of failing
// startup.
type Config struct {
	Port string

	// SMTP configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	SMTPTimeout  time.Duration

	// Generation API configuration
	EmailAPIKey     string
	EmailAPIURL     string
	EmailModel      string
	EmailAPIEnabled bool

	// SQLite database; empty selects the in-memory repository
	SQLitePath string

	// Allowed front-end origins for CORS
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	smtpPort := 587
	if parsed, err := strconv.Atoi(GetEnv("SMTP_PORT", "")); err == nil && parsed > 0 {
		smtpPort = parsed
	}

	smtpTimeout := 30 * time.Second
	if parsed, err := strconv.Atoi(GetEnv("SMTP_TIMEOUT", "")); err == nil && parsed > 0 {
		smtpTimeout = time.Duration(parsed) * time.Second
	}

	apiEnabled, _ := strconv.ParseBool(GetEnv("EMAIL_API_CONFIGURED", "false"))

	origins := strings.Split(GetEnv("CORS_ORIGINS",
		"http://localhost:5173,http://127.0.0.1:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:            GetEnv("PORT", "8080"),
		SMTPHost:        GetEnv("SMTP_HOST", ""),
		SMTPPort:        smtpPort,
		SMTPUsername:    GetEnv("SMTP_USERNAME", ""),
		SMTPPassword:    GetEnv("SMTP_PASSWORD", ""),
		EmailFrom:       GetEnv("EMAIL_FROM", ""),
		SMTPTimeout:     smtpTimeout,
		EmailAPIKey:     GetEnv("EMAIL_API_KEY", ""),
		EmailAPIURL:     GetEnv("EMAIL_API_URL", ""),
		EmailModel:      GetEnv("EMAIL_MODEL", "gemini-2.0-flash"),
		EmailAPIEnabled: apiEnabled,
		SQLitePath:      GetEnv("SQLITE_PATH", "database.db"),
		AllowedOrigins:  origins,
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// SMTPConfigured reports whether every setting required to open an SMTP
// session is present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != "" && c.EmailFrom != ""
}

// EmailAPIReady reports whether the generation backend can be called.
func (c *Config) EmailAPIReady() bool {
	return c.EmailAPIEnabled && c.EmailAPIKey != "" && c.EmailAPIURL != ""
}
