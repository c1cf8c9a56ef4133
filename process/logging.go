package process

import (
	"log/slog"
	"os"
	"sync"

	"github.com/joeycumines/logiface"
	logifaceslog "github.com/joeycumines/logiface-slog"
)

// Logger is the structured logger type used throughout this package. It is
// a thin alias over logiface's generic Logger, pinned to the logiface-slog
// event implementation - the same construction used by that package's own
// test/benchmark suite (logiface.New[*Event](slog.NewLogger(handler))).
type Logger = logiface.Logger[*logifaceslog.Event]

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   = newDefaultLogger()
)

// newDefaultLogger builds the package default: an Info-level logger writing
// structured text to stderr. Grounded in eventloop/logging.go's package-
// level SetStructuredLogger/getGlobalLogger seam, generalized to use the
// real logiface/logiface-slog stack instead of a hand-rolled Logger
// interface.
func newDefaultLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return logiface.New[*logifaceslog.Event](logifaceslog.NewLogger(handler))
}

// SetDefaultLogger replaces the package-wide default logger used by any
// Process constructed without an explicit WithLogger option. Safe for
// concurrent use.
func SetDefaultLogger(l *Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	defaultLoggerMu.Lock()
	defaultLogger = l
	defaultLoggerMu.Unlock()
}

// getDefaultLogger returns the current package-wide default logger.
func getDefaultLogger() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}
