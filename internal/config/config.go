package config

import (
	"errors"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment   string `default:"development"`
	ListenAddress string `split_words:"true" default:":8080"`

	// BackendBaseURL is the root every '/api/<domain>/<entity>' path is resolved against.
	// It has no default on purpose; pages must never guess where the backend lives.
	BackendBaseURL   string        `split_words:"true" required:"true"`
	BackendTimeout   time.Duration `split_words:"true" default:"15s"`
	PlaceholderToken string        `split_words:"true" default:"demo-token"`
	TokenCookie      string        `split_words:"true" default:"access_token"`

	// FallbackEnabled controls whether failed list reads are answered with sample data
	FallbackEnabled bool `split_words:"true" default:"true"`

	DefaultPageSize     int           `split_words:"true" default:"10"`
	MaxPageSize         int           `split_words:"true" default:"100"`
	Locale              string        `default:"pt-BR"`
	CurrencySymbol      string        `split_words:"true" default:"R$"`
	ChartAllowedOrigins []string      `split_words:"true" default:"*"`
	NoticeLifetime      time.Duration `split_words:"true" default:"2m"`
	AnalyticsMaxPages   int           `split_words:"true" default:"50"`
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return config.Environment == "production"
}

// Validate checks the values envconfig cannot check on its own
func (config *Config) Validate() error {
	parsed, err := url.Parse(config.BackendBaseURL)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("the backend base URL has to be absolute")
	}
	if config.DefaultPageSize <= 0 {
		return errors.New("the default page size has to be positive")
	}
	if config.MaxPageSize < config.DefaultPageSize {
		return errors.New("the max page size must not be smaller than the default page size")
	}
	if config.BackendTimeout <= 0 {
		return errors.New("the backend timeout has to be positive")
	}
	return nil
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("dash", config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
