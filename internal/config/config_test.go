package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, 1.0, cfg.LatencyScale)
				assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
				assert.Empty(t, cfg.CompletionJob)
				assert.False(t, cfg.SendGrid.Enabled())
				assert.False(t, cfg.Twilio.Enabled())
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"PORT":                    "9090",
				"MOCK_LATENCY_SCALE":      "0",
				"CORS_ALLOWED_ORIGINS":    "http://a.test,http://b.test",
				"BOOKING_COMPLETION_CRON": "@hourly",
				"SENDGRID_API_KEY":        "key",
				"SENDGRID_FROM_EMAIL":     "desk@example.com",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Port)
				assert.Equal(t, 0.0, cfg.LatencyScale)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
				assert.Equal(t, "@hourly", cfg.CompletionJob)
				assert.True(t, cfg.SendGrid.Enabled())
			},
		},
		{
			name: "invalid latency scale falls back",
			env:  map[string]string{"MOCK_LATENCY_SCALE": "fast"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1.0, cfg.LatencyScale)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "MOCK_LATENCY_SCALE", "CORS_ALLOWED_ORIGINS", "BOOKING_COMPLETION_CRON", "SENDGRID_API_KEY", "SENDGRID_FROM_EMAIL", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_FROM_NUMBER"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, Load())
		})
	}
}

func TestLoadDashboard(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.test/")
	t.Setenv("AUTOCOMPLETE_DEBOUNCE", "")
	t.Setenv("DASHBOARD_REFRESH_CRON", "@every 1m")

	cfg := LoadDashboard()

	assert.Equal(t, "http://api.test", cfg.APIBaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, "@every 1m", cfg.RefreshCron)
}
