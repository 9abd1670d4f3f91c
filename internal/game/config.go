package game

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvWebhookURL = "HAUNTED_WEBHOOK_URL"
	EnvSeed       = "HAUNTED_SEED"
	EnvStateDir   = "HAUNTED_STATE_DIR"
	EnvTickHz     = "HAUNTED_TICK_HZ"
)

const defaultTickHz = 60

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible floors.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// WebhookURL receives notification events. Empty disables them.
	WebhookURL string

	// StateDir holds the persisted state and log file. Empty means the XDG default.
	StateDir string

	// TickHz is the number of update ticks per second.
	TickHz int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{TickHz: defaultTickHz}
}

// ConfigFromEnv reads the configuration from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.WebhookURL = os.Getenv(EnvWebhookURL)
	cfg.StateDir = os.Getenv(EnvStateDir)

	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	if raw := os.Getenv(EnvTickHz); raw != "" {
		hz, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTickHz, err)
		}
		if hz <= 0 || hz > 1000 {
			return cfg, fmt.Errorf("%s must be within 1..1000, got %d", EnvTickHz, hz)
		}
		cfg.TickHz = hz
	}

	return cfg, nil
}

// TickInterval returns the time between ticks.
func (c Config) TickInterval() time.Duration {
	hz := c.TickHz
	if hz <= 0 {
		hz = defaultTickHz
	}
	return time.Second / time.Duration(hz)
}
