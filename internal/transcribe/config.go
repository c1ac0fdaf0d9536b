package transcribe

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects the external speech-to-text program.
type Config struct {
	// Command is the program and its arguments. It must write one JSON
	// Segment per line to stdout until it is stopped.
	Command []string

	// StopTimeout bounds how long Stop waits for the program to exit.
	StopTimeout time.Duration
}

// DefaultConfig returns a Config with no recognizer.
func DefaultConfig() Config {
	return Config{StopTimeout: 2 * time.Second}
}

// ConfigFromEnv reads CAREERPREP_STT_COMMAND, split on whitespace.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CAREERPREP_STT_COMMAND"); v != "" {
		cfg.Command = strings.Fields(v)
	}
	return cfg
}

// Enabled reports whether a command is configured.
func (c Config) Enabled() bool { return len(c.Command) > 0 }

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.StopTimeout <= 0 {
		return fmt.Errorf("stop timeout must be positive, got %s", c.StopTimeout)
	}
	return nil
}

// New returns a Command transcriber when one is configured, Noop otherwise.
func New(cfg Config, opts ...CommandOption) Transcriber {
	if !cfg.Enabled() {
		return Noop{}
	}
	return NewCommand(cfg, opts...)
}
