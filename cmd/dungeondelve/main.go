// Package main is the entry point for DungeonDelve.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeondelve/internal/audio"
	"github.com/samdwyer/dungeondelve/internal/game"
	"github.com/samdwyer/dungeondelve/internal/logger"
	"github.com/samdwyer/dungeondelve/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dungeondelve: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local development. Not fatal: env vars might be
	// set directly.
	envErr := godotenv.Load()

	// tcell owns the terminal, so logs go to a file.
	logFile, err := logger.OpenFile(envOr("DUNGEON_LOG_FILE", "dungeondelve.log"))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger.Init(logFile)
	log := logger.Log

	if envErr != nil {
		log.WithError(envErr).Debug(".env file not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.WithError(err).Warn("telemetry setup failed, running without tracing")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Error("telemetry shutdown")
			}
		}()
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return fmt.Errorf("configuration: %w", err)
	}

	var opts []game.Option
	sound := audio.NewPlayer()
	if err := sound.Init(); err != nil {
		log.WithError(err).Warn("audio unavailable")
	} else {
		defer sound.Close()
		opts = append(opts, game.WithListener(sound))
	}

	g, err := game.New(cfg, opts...)
	if err != nil {
		log.WithError(err).Error("failed to initialize game")
		return fmt.Errorf("initialize game: %w", err)
	}

	if err := g.Run(ctx); err != nil {
		log.WithError(err).Error("game error")
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
