package cli

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"io"
)

// setupLogging points the global logger at stderr. Logging is off unless --debug or LOG_LEVEL
// asks for it, so stderr only carries error reports by default.
func setupLogging(w io.Writer, debug bool, level string) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	lvl := zerolog.Disabled
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(lvl).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}
