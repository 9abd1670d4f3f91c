// Package main is the entry point for Haunted Eternity.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/hauntedeternity/internal/game"
	"github.com/samdwyer/hauntedeternity/internal/gamedata"
	"github.com/samdwyer/hauntedeternity/internal/notify"
	"github.com/samdwyer/hauntedeternity/internal/persistence"
	"github.com/samdwyer/hauntedeternity/internal/telemetry"
)

const logFile = "hauntedeternity.log"

func main() {
	// Load .env file for local development
	envErr := godotenv.Load()

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	stateDir := cfg.StateDir
	if stateDir == "" {
		if stateDir, err = persistence.DefaultDir(); err != nil {
			log.Fatalf("Failed to locate state directory: %v", err)
		}
	}

	// tcell owns the terminal, so everything logged goes to a file
	closeLog := redirectLog(stateDir)
	defer closeLog()
	if envErr != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", envErr)
	}

	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	rules, err := gamedata.LoadRules()
	if err != nil {
		fatalf("Failed to load rules: %v", err)
	}

	store, err := persistence.OpenFileStore(persistence.StatePath(stateDir))
	if err != nil {
		fatalf("Failed to open state: %v", err)
	}

	webhook := notify.NewWebhook(cfg.WebhookURL, nil)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := webhook.Close(flushCtx); err != nil {
			log.Printf("Dropped pending notifications: %v", err)
		}
	}()

	g, err := game.New(cfg, rules, persistence.NewSettings(store), webhook)
	if err != nil {
		fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Printf("Game error: %v", err)
		fmt.Fprintf(os.Stderr, "The house collapsed: %v\n", err)
	}
}

// fatalf reports to both the log file and the terminal, then exits.
func fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

// redirectLog sends log output to the state directory and returns a closer.
// If the file cannot be opened, logging stays on stderr.
func redirectLog(dir string) func() {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return func() {}
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_HAUNTED_API_KEY")
	if apiKey == "" {
		return
	}

	dataset := os.Getenv("HONEYCOMB_HAUNTED_DATASET")
	if dataset == "" {
		dataset = "hauntedeternity" // default dataset name
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	// The .env file may hold an unexpanded variable reference, so build the header here
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
