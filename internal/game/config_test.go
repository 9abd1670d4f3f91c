package game

import (
	"testing"
	"time"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvWebhookURL, "https://example.invalid/hook")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvStateDir, "/tmp/haunted")
	t.Setenv(EnvTickHz, "30")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() = %v", err)
	}
	if cfg.WebhookURL != "https://example.invalid/hook" || cfg.Seed != 42 || cfg.StateDir != "/tmp/haunted" || cfg.TickHz != 30 {
		t.Errorf("ConfigFromEnv() = %+v", cfg)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvWebhookURL, "")
	t.Setenv(EnvSeed, "")
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvTickHz, "")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("ConfigFromEnv() = %+v, want defaults", cfg)
	}
	if got := cfg.TickInterval(); got != time.Second/60 {
		t.Errorf("TickInterval() = %v, want 1/60s", got)
	}
}

func TestConfigFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvSeed, "abc"},
		{EnvTickHz, "fast"},
		{EnvTickHz, "0"},
		{EnvTickHz, "5000"},
	}

	for _, tt := range tests {
		t.Setenv(EnvSeed, "")
		t.Setenv(EnvTickHz, "")
		t.Setenv(tt.key, tt.value)
		if _, err := ConfigFromEnv(); err == nil {
			t.Errorf("%s=%q should be rejected", tt.key, tt.value)
		}
	}
}
