// Package logging builds the process's base zerolog.Logger and per-request
// child loggers, grounded on the zerolog.Logger-in-a-Config pattern used
// throughout aristath-sentinel's internal/server package.
package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New builds the base logger for the process at the given level name
// ("debug", "info", "warn", "error"; unrecognized names fall back to info).
func New(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// WithRequest returns a child logger tagged with a fresh request id and the
// named component, for one call into the bootstrap orchestrator or pricing
// assembler.
func WithRequest(base zerolog.Logger, component string) (zerolog.Logger, string) {
	reqID := uuid.NewString()
	return base.With().Str("component", component).Str("request_id", reqID).Logger(), reqID
}
