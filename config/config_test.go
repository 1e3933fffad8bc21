package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SCRAPE_API_BASE_URL", "RETRY_MAX_ATTEMPTS", "RETRY_BASE_DELAY", "DEMO_USERNAME", "DEMO_PASSWORD", "SESSION_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ScrapeAPIBaseURL != "http://localhost:3000/api" {
		t.Errorf("ScrapeAPIBaseURL = %q", cfg.ScrapeAPIBaseURL)
	}
	if cfg.RetryMaxAttempts != 3 || cfg.RetryBaseDelay != time.Second {
		t.Errorf("retry defaults = %d/%v, want 3/1s", cfg.RetryMaxAttempts, cfg.RetryBaseDelay)
	}
	if cfg.DemoUsername != "admin" || cfg.DemoPassword != "demo123" {
		t.Errorf("demo credentials = %q/%q", cfg.DemoUsername, cfg.DemoPassword)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCRAPE_API_TIMEOUT", "5s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.ScrapeAPITimeout != 5*time.Second {
		t.Errorf("ScrapeAPITimeout = %v, want 5s", cfg.ScrapeAPITimeout)
	}
	if !cfg.Environment().IsProduction() {
		t.Errorf("Environment = %v, want production", cfg.Environment())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.ScrapeAPIBaseURL = "" }, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.RetryMaxAttempts = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.RetryBaseDelay = -time.Second }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				ScrapeAPIBaseURL: "http://localhost:3000/api",
				RetryMaxAttempts: 3,
				RetryBaseDelay:   time.Second,
				SessionTTL:       time.Hour,
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	if got := ParseEnvironment("production"); got != Production {
		t.Errorf("ParseEnvironment(production) = %v", got)
	}
	if got := ParseEnvironment("bogus"); got != Development {
		t.Errorf("ParseEnvironment(bogus) = %v, want development", got)
	}
}
