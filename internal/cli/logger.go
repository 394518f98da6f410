package cli

import (
	"log/slog"
	"os"

	"github.com/dialsheet/dialsheet/internal/config"
)

// newLogger builds the slog logger for one command run from the [logging]
// config section. Logs go to stderr so stdout stays clean for JSON output
// and shell pipes. verbose forces debug level regardless of config.
func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	var lvlVar slog.LevelVar
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	lvlVar.Set(parseSlogLevel(level))

	opts := &slog.HandlerOptions{Level: &lvlVar}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseSlogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
