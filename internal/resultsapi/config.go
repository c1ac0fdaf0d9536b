package resultsapi

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds Results API connection settings.
type Config struct {
	// BaseURL is the scheme and host of the Results API, e.g.
	// "http://localhost:5000". Endpoint paths are appended to it.
	BaseURL string

	// Timeout bounds a single request. Default: 15s.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns a Config pointing at a local development server.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:5000",
		Timeout:   15 * time.Second,
		UserAgent: "careerprep",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("CAREERPREP_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("CAREERPREP_API_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// Validate checks that the base URL is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API URL %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API URL %q has no host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
