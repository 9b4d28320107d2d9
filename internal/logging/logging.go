// Package logging configures the process-wide logger. A TUI owns the
// terminal, so logs only ever go to a file, and only when asked for.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup initializes logging from the environment. Set TIJ_LOG_FILE to enable
// logging; TIJ_LOG_LEVEL controls verbosity (debug, info, warn, error).
// Returns a closer for the log sink (a no-op when logging is disabled).
func Setup() io.Closer {
	path := os.Getenv("TIJ_LOG_FILE")
	if path == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	log.SetOutput(sink)
	log.SetReportTimestamp(true)
	log.SetLevel(levelFromEnv())
	return sink
}

func levelFromEnv() log.Level {
	switch strings.ToLower(os.Getenv("TIJ_LOG_LEVEL")) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
