package telemetry

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout, zerolog.InfoLevel)
)

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05Z07:00"
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Init configures the level and bridges the standard library logger so
// existing log.Printf calls produce structured lines too.
func Init(level string) {
	mu.Lock()
	logger = logger.Level(parseLevel(level))
	bridged := logger.With().Str("source", "stdlog").Logger()
	mu.Unlock()

	stdlog.SetFlags(0)
	stdlog.SetOutput(bridged)
}

// SetOutput redirects log output, returning a func that restores the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	prev := logger
	logger = newLogger(w, prev.GetLevel())
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(zerolog.InfoLevel, msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(zerolog.WarnLevel, msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(zerolog.ErrorLevel, msg, fields)
}

func write(level zerolog.Level, msg string, fields map[string]any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.WithLevel(level).Fields(fields).Msg(msg)
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
