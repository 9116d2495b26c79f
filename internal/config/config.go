// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional settings (timeouts, pool size, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before anything reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix PETCARE_. Nesting uses a double
	underscore so that single underscores can stay inside key names:

		PETCARE_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns

	Values are decoded by koanf's default hooks, so durations accept "5s" and
	lists accept comma separated strings.
*/

const (
	EnvPrefix = "PETCARE_"
	// ServiceName tags logs with the service identity.
	ServiceName = "petcare-api"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Email         EmailConfig          `koanf:"email" validate:"required"`
	Verification  VerificationConfig   `koanf:"verification" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Read/write/idle timeouts are whole seconds, RequestTimeout bounds the
// handler chain of a single request.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        int           `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int           `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int           `koanf:"idle_timeout" validate:"required"`
	RequestTimeout     time.Duration `koanf:"request_timeout" validate:"min=1s"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required"`
	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`

	// ReconnectDelay is the pause between connection attempts while the
	// database is unreachable.
	ReconnectDelay time.Duration `koanf:"reconnect_delay" validate:"min=100ms"`
	// QueryTimeout bounds every statement and transaction.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"min=100ms"`
}

// EmailConfig selects and configures the outbound mail provider.
type EmailConfig struct {
	Provider    string        `koanf:"provider" validate:"required,oneof=smtp resend"`
	FromAddress string        `koanf:"from_address" validate:"required,email"`
	FromName    string        `koanf:"from_name"`
	SendTimeout time.Duration `koanf:"send_timeout" validate:"min=1s"`

	SMTPHost     string `koanf:"smtp_host"`
	SMTPPort     int    `koanf:"smtp_port"`
	SMTPUser     string `koanf:"smtp_user"`
	SMTPPassword string `koanf:"smtp_password"`

	ResendAPIKey string `koanf:"resend_api_key"`
}

// Validate checks the provider specific settings that struct tags cannot
// express.
func (c *EmailConfig) Validate() error {
	switch c.Provider {
	case "smtp":
		if c.SMTPHost == "" || c.SMTPPort == 0 {
			return fmt.Errorf("email provider smtp requires smtp_host and smtp_port")
		}
	case "resend":
		if c.ResendAPIKey == "" {
			return fmt.Errorf("email provider resend requires resend_api_key")
		}
	}
	return nil
}

// VerificationConfig controls the links embedded in verification emails.
type VerificationConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

// listKeys are the keys whose env value is a comma separated list.
var listKeys = map[string]struct{}{
	"server.cors_allowed_origins": {},
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Default returns a Config holding every optional default. Values read from
// the environment are decoded on top of it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			RequestTimeout:     30 * time.Second,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
			RateBurst:          40,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
			ReconnectDelay:  5 * time.Second,
			QueryTimeout:    5 * time.Second,
		},
		Email: EmailConfig{
			Provider:    "smtp",
			FromName:    "PetCare",
			SMTPPort:    587,
			SendTimeout: 15 * time.Second,
		},
		Verification: VerificationConfig{
			BaseURL: "https://api-interna.onrender.com",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of the
// defaults, validates it and returns the resulting config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(s, v string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")
		// koanf's decoder does not split strings into slices.
		if _, ok := listKeys[key]; ok {
			return key, splitList(v)
		}
		return key, v
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	// Service identity is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs the struct tag validation followed by the hand written rules
// of each section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := c.Email.Validate(); err != nil {
		return fmt.Errorf("invalid email config: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}
	return nil
}

// IsLocal reports whether SQL statements should be traced to the log.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
