package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// return new console logger with <loglevel> debug,info,warn,error and
// optional key/value pairs added to every event (e.g. "component", "harbor")

func NewLogger(logLevel string, fields ...string) *zerolog.Logger {

	// Set log output format
	logCtx := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp()
	for k := 0; k+1 < len(fields); k += 2 {
		logCtx = logCtx.Str(fields[k], fields[k+1])
	}
	logger := logCtx.Logger()
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	// Set log level, default info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	switch strings.ToLower(logLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
	return &logger
}
