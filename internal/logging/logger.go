// Package logging builds the structured logger used by the dietlp command
// and bridges it to the solver's Printf-style Logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/costela/dietlp"
)

// Config selects the level, format and destination of log output.
type Config struct {
	Level      string
	Format     string // json or text
	File       string // empty logs to the fallback writer only
	MaxSize    int    // megabytes per file before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Logger wraps *slog.Logger and owns the rotating file, if any.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New returns a logger writing to cfg.File, rotated by lumberjack, or to
// fallback if no file is configured.
func New(cfg Config, fallback io.Writer) *Logger {
	l := &Logger{}

	out := fallback
	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		out = l.file
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	l.Logger = slog.New(handler).With(slog.String("app", "dietlp"))

	return l
}

// ParseLevel maps a level name onto a slog level. Unknown names yield
// slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Solver returns a dietlp.Logger that forwards solver diagnostics at debug
// level.
func (l *Logger) Solver() dietlp.Logger {
	return slog.NewLogLogger(l.Handler(), slog.LevelDebug)
}

// Close releases the log file. It is a no-op when logging to the fallback
// writer.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}
