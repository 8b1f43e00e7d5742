// Package logging provides structured logging for the rostermerge system using zerolog.
// It offers human-readable console output when attached to a terminal and
// structured JSON output otherwise.
//
// Loggers travel through a run on its context, picking up the run ID, the
// operation and the file and sheet being read:
//
//	ctx := logging.WithLogger(context.Background(), logger)
//	ctx = logging.WithSheet(ctx, "files/a.xlsx", "Sheet1")
//	logging.FromContext(ctx).Debug().Int("rows", 12).Msg("Absorbed sheet")
package logging

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLoggerFromConfig(ConfigFromEnv())
)

// Default returns the process-wide logger used when a context carries none.
func Default() *zerolog.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	l := defaultLogger
	return &l
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
	log.Logger = logger
}

// Configure builds a logger from cfg and makes it the default.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}
