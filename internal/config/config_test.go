package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PETCARE_PRIMARY__ENV", "test")
	t.Setenv("PETCARE_DATABASE__HOST", "localhost")
	t.Setenv("PETCARE_DATABASE__USER", "petcare")
	t.Setenv("PETCARE_DATABASE__PASSWORD", "secret")
	t.Setenv("PETCARE_DATABASE__NAME", "petcare")
	t.Setenv("PETCARE_EMAIL__FROM_ADDRESS", "no-reply@petcare.test")
	t.Setenv("PETCARE_EMAIL__SMTP_HOST", "smtp.petcare.test")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Database.ReconnectDelay)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 15*time.Second, cfg.Email.SendTimeout)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, "https://api-interna.onrender.com", cfg.Verification.BaseURL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PETCARE_SERVER__PORT", "9090")
	t.Setenv("PETCARE_SERVER__CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("PETCARE_DATABASE__MAX_OPEN_CONNS", "25")
	t.Setenv("PETCARE_DATABASE__RECONNECT_DELAY", "2s")
	t.Setenv("PETCARE_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("PETCARE_VERIFICATION__BASE_URL", "https://verify.petcare.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.Database.ReconnectDelay)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "https://verify.petcare.test", cfg.Verification.BaseURL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown environment",
			env:  map[string]string{"PETCARE_PRIMARY__ENV": "staging"},
		},
		{
			name: "resend without api key",
			env:  map[string]string{"PETCARE_EMAIL__PROVIDER": "resend"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"PETCARE_OBSERVABILITY__LOGGING__LEVEL": "verbose"},
		},
		{
			name: "zero pool size",
			env:  map[string]string{"PETCARE_DATABASE__MAX_OPEN_CONNS": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestEmailConfig_Validate(t *testing.T) {
	assert.NoError(t, (&EmailConfig{Provider: "resend", ResendAPIKey: "re_123"}).Validate())
	assert.NoError(t, (&EmailConfig{Provider: "smtp", SMTPHost: "localhost", SMTPPort: 25}).Validate())
	assert.Error(t, (&EmailConfig{Provider: "smtp", SMTPPort: 25}).Validate())
}
