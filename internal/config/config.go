package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	LogLevel      string
	LatencyScale  float64
	CORSOrigins   []string
	CompletionJob string
	SendGrid      SendGridConfig
	Twilio        TwilioConfig
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

func (c SendGridConfig) Enabled() bool {
	return c.APIKey != "" && c.FromEmail != ""
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

type DashboardConfig struct {
	APIBaseURL    string
	LogLevel      string
	RefreshCron   string
	DebounceDelay time.Duration
	StationQuery  string
	Timeout       time.Duration
}

// Load reads the mock API server configuration. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LatencyScale:  getEnvAsFloatOrDefault("MOCK_LATENCY_SCALE", 1),
		CORSOrigins:   strings.Split(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		CompletionJob: os.Getenv("BOOKING_COMPLETION_CRON"),
		SendGrid: SendGridConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
			FromName:  getEnvOrDefault("SENDGRID_FROM_NAME", "Campervan Rentals"),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
	}
}

// LoadDashboard reads the configuration of the dashboard client.
func LoadDashboard() *DashboardConfig {
	godotenv.Load()

	return &DashboardConfig{
		APIBaseURL:    strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:8080"), "/"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		RefreshCron:   os.Getenv("DASHBOARD_REFRESH_CRON"),
		DebounceDelay: getEnvAsDurationOrDefault("AUTOCOMPLETE_DEBOUNCE", 300*time.Millisecond),
		StationQuery:  os.Getenv("DASHBOARD_STATION_QUERY"),
		Timeout:       getEnvAsDurationOrDefault("API_TIMEOUT", 5*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	logrus.Debugf("Environment variable %s is not set, using default value", key)
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
		logrus.Warnf("Environment variable %s has invalid value %q, using default value", key, value)
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		logrus.Warnf("Environment variable %s has invalid value %q, using default value", key, value)
	}
	return defaultValue
}
