// Package logging provides the structured logger used across websearch.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines the structured logging interface.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Debug(msg string, fields map[string]any)
}

// Format selects the on-wire shape of log entries.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// ZeroLogger writes structured entries through zerolog.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a ZeroLogger writing to w. Debug entries are only emitted when
// verbose is true.
func New(w io.Writer, format Format, verbose bool) *ZeroLogger {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return &ZeroLogger{log: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *ZeroLogger {
	return &ZeroLogger{log: zerolog.Nop()}
}

func (l *ZeroLogger) Info(msg string, fields map[string]any)  { l.emit(l.log.Info(), msg, fields) }
func (l *ZeroLogger) Warn(msg string, fields map[string]any)  { l.emit(l.log.Warn(), msg, fields) }
func (l *ZeroLogger) Error(msg string, fields map[string]any) { l.emit(l.log.Error(), msg, fields) }
func (l *ZeroLogger) Debug(msg string, fields map[string]any) { l.emit(l.log.Debug(), msg, fields) }

// Zerolog exposes the underlying zerolog.Logger.
func (l *ZeroLogger) Zerolog() *zerolog.Logger {
	return &l.log
}

func (l *ZeroLogger) emit(ev *zerolog.Event, msg string, fields map[string]any) {
	// Disabled levels return a nil event.
	if ev == nil {
		return
	}
	ev.Fields(fields).Msg(msg)
}
