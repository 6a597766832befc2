package mapology

import (
	"context"
	"log/slog"
	"sync/atomic"

	slogcontext "github.com/veqryn/slog-context"
)

const (
	// LevelVerbose is used for per field tracing
	LevelVerbose = slog.LevelDebug - 4
	// LevelNone disables library logging
	LevelNone = slog.LevelError + 64
)

const realm = "mapology"

var (
	globalLogger atomic.Pointer[slog.Logger]
	minLevel     slog.LevelVar
)

func init() {
	minLevel.Set(LevelVerbose)
}

// SetLogger sets process wide logger, nil restores slog default logger
func SetLogger(logger *slog.Logger) {
	globalLogger.Store(logger)
}

// SetLogLevel sets the minimum level forwarded to the logger
func SetLogLevel(level slog.Level) {
	minLevel.Set(level)
}

// loggerFor resolves logger: option, context, global, default
func loggerFor(ctx context.Context, options *Options) *slog.Logger {
	logger := options.logger
	if logger == nil && ctx != nil {
		if candidate := slogcontext.FromCtx(ctx); candidate != slog.Default() {
			logger = candidate
		}
	}
	if logger == nil {
		logger = globalLogger.Load()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("realm", realm))
}

func enabled(level slog.Level) bool {
	return level >= minLevel.Level()
}
