package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chatreveal/chatscope/internal/analyzer"
	"github.com/chatreveal/chatscope/internal/api"
	"github.com/chatreveal/chatscope/internal/config"
	"github.com/chatreveal/chatscope/internal/events"
	"github.com/chatreveal/chatscope/internal/groq"
	"github.com/chatreveal/chatscope/internal/pipeline"
	"github.com/chatreveal/chatscope/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("chatscope starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database (optional — without it analyses are returned but not stored)
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set — running without persistence")
	}

	// Groq client
	pool, err := groq.NewKeyPool(cfg.GroqAPIKeys)
	if err != nil {
		slog.Error("GROQ_API_KEYS is required", "error", err)
		os.Exit(1)
	}
	llm := groq.NewClient(pool, cfg.GroqModel, cfg.GroqBaseURL, slog.Default())
	slog.Info("groq client ready", "model", cfg.GroqModel, "keys", pool.Len())

	// Analyzer
	an := analyzer.New(llm, slog.Default())

	// NATS (optional — lifecycle events only)
	var ev *events.Client
	if cfg.NatsURL != "" {
		ev, err = events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer ev.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set — running without lifecycle events")
	}

	// Pipeline
	pipe := pipeline.New(an, pool.Len(), nil, slog.Default())

	// HTTP API
	srv := api.NewServer(cfg.Port, pipe, db, ev, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("chatscope ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("chatscope stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
