package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
)

// Config holds every setting the server and the CLI read from the environment.
type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	ScrapeAPIBaseURL string        `envconfig:"SCRAPE_API_BASE_URL" default:"http://localhost:3000/api"`
	ScrapeAPITimeout time.Duration `envconfig:"SCRAPE_API_TIMEOUT" default:"60s"`

	DemoUsername string        `envconfig:"DEMO_USERNAME" default:"admin"`
	DemoPassword string        `envconfig:"DEMO_PASSWORD" default:"demo123"`
	JWTSecret    string        `envconfig:"JWT_SECRET" default:"change-me"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	// Optional backing services. Empty values select the in-memory fallbacks.
	RedisURL string `envconfig:"REDIS_URL"`
	MongoURI string `envconfig:"MONGO_URI"`
	MongoDB  string `envconfig:"MONGO_DB" default:"scraper"`

	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	RetryBaseDelay   time.Duration `envconfig:"RETRY_BASE_DELAY" default:"1s"`
}

// Environment returns the parsed APP_ENV value.
func (c *Config) Environment() Environment {
	return ParseEnvironment(c.AppEnv)
}

// Load reads an optional .env file and binds the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logx.Debug().Msg("no .env file found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values envconfig cannot express through tags.
func (c *Config) Validate() error {
	if c.ScrapeAPIBaseURL == "" {
		return fmt.Errorf("SCRAPE_API_BASE_URL must not be empty")
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("RETRY_BASE_DELAY must be non-negative")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}
