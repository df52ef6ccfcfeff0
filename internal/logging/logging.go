package logging

import (
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLogLevel     = "LOG_LEVEL"
	DefaultLogLevel = slog.LevelInfo
)

// Opts configures the logger.
type Opts struct {
	ServiceName string
	Level       slog.Level
	AddSource   bool
	JSON        bool
}

// Setup builds a slog.Logger, tags every entry with the service name
// and installs it as the process default.
func Setup(o Opts) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     o.Level,
		AddSource: o.AddSource,
	}

	if o.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	attrs := []slog.Attr{slog.String("service", o.ServiceName)}
	handler = handler.WithAttrs(attrs)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// SetupFromEnv builds a logger with the level taken from LOG_LEVEL.
func SetupFromEnv(serviceName string) *slog.Logger {
	return Setup(Opts{
		ServiceName: serviceName,
		Level:       LevelFromEnv(),
		AddSource:   LevelFromEnv() <= slog.LevelDebug,
		JSON:        false,
	})
}

// LevelFromEnv parses LOG_LEVEL, defaulting to info.
func LevelFromEnv() slog.Level {
	levelStr := os.Getenv(EnvLogLevel)
	if levelStr == "" {
		return DefaultLogLevel
	}

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return DefaultLogLevel
	}
}
