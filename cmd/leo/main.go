package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/ChrisCruze/Leo/internal/config"
	"github.com/ChrisCruze/Leo/internal/enrichment"
	"github.com/ChrisCruze/Leo/internal/generation"
	"github.com/ChrisCruze/Leo/internal/logging"
	"github.com/ChrisCruze/Leo/internal/matching"
	"github.com/ChrisCruze/Leo/internal/metrics"
	"github.com/ChrisCruze/Leo/internal/pipeline"
	"github.com/ChrisCruze/Leo/internal/sinks/airtable"
	"github.com/ChrisCruze/Leo/internal/sinks/profilestore"
	"github.com/ChrisCruze/Leo/internal/store"
)

const usage = `usage: leo <command>

commands:
  users-pull     fetch and enrich the user base
  events-pull    fetch and enrich upcoming events
  run-campaigns  match qualified users to events and draft messages
  all            run users-pull, events-pull then run-campaigns
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting leo", "command", command)

	collector, err := metrics.NewPipelineCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	if cfg.Pipeline.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			logger.Info("serving metrics", "addr", cfg.Pipeline.MetricsAddr)
			if err := http.ListenAndServe(cfg.Pipeline.MetricsAddr, mux); err != nil {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.New(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	var at *airtable.Client
	if cfg.Airtable.Enabled() {
		at = airtable.NewClient(cfg.Airtable, logger)
		logger.Info("airtable sync enabled", "base", cfg.Airtable.BaseID)
	} else {
		logger.Info("airtable sync disabled")
	}

	var profiles *profilestore.Store
	if !cfg.ProfileStore.Disabled {
		profiles, err = profilestore.New(cfg.ProfileStore, logger)
		if err != nil {
			logger.Warn("profile store unavailable, continuing without it", "error", err)
			profiles = nil
		} else {
			defer profiles.Close()
		}
	}

	enricher := enrichment.NewEnricher(logger, collector, cfg.Pipeline.CampaignLaunchYear)
	llm := generation.NewClient(cfg.OpenAI, logger, collector)
	matcher := matching.NewMatcher(llm, cfg.Pipeline, logger, collector)
	runner := pipeline.NewRunner(cfg.Pipeline, db, enricher, matcher, at, profiles, collector, logger)

	if err := run(ctx, runner, command); err != nil {
		logger.Error("pipeline failed", "command", command, "error", err)
		os.Exit(1)
	}
	logger.Info("done", "command", command)
}

func run(ctx context.Context, runner *pipeline.Runner, command string) error {
	switch command {
	case "users-pull":
		return runner.UsersPull(ctx)
	case "events-pull":
		return runner.EventsPull(ctx)
	case "run-campaigns":
		return runner.RunCampaigns(ctx)
	case "all":
		if err := runner.UsersPull(ctx); err != nil {
			return err
		}
		if err := runner.EventsPull(ctx); err != nil {
			return err
		}
		return runner.RunCampaigns(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
