package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rpgo/loan-amortizer/internal/config"
)

// ParseLevel maps a configured level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the server logger on stdout.
func NewLogger(cfg config.LoggerConfig) *slog.Logger {
	return NewLoggerTo(os.Stdout, cfg)
}

// NewLoggerTo builds a logger writing to w. The CLI passes stderr so that
// rendered schedules on stdout stay clean.
func NewLoggerTo(w io.Writer, cfg config.LoggerConfig) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Encoding, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// Adapter exposes a *slog.Logger through the printf-style calculation.Logger interface.
type Adapter struct {
	Logger *slog.Logger
}

func NewAdapter(l *slog.Logger) Adapter {
	return Adapter{Logger: l.With("component", "calculation")}
}

func (a Adapter) Debugf(format string, args ...any) { a.Logger.Debug(fmt.Sprintf(format, args...)) }
func (a Adapter) Infof(format string, args ...any)  { a.Logger.Info(fmt.Sprintf(format, args...)) }
func (a Adapter) Warnf(format string, args ...any)  { a.Logger.Warn(fmt.Sprintf(format, args...)) }
func (a Adapter) Errorf(format string, args ...any) { a.Logger.Error(fmt.Sprintf(format, args...)) }
