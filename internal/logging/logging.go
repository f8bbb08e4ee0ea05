package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ChrisCruze/Leo/internal/config"
)

// New constructs the process logger from config. An empty format means json,
// the default for deployed runs; text reads better for local debugging.
func New(cfg config.LoggingConfig) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
}

// ForRun scopes a logger to one pipeline invocation so every line it emits
// carries the run ID and pipeline name.
func ForRun(log *slog.Logger, pipeline, runID string) *slog.Logger {
	return log.With("run_id", runID, "pipeline", pipeline)
}
