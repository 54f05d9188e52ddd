// Package logging provides the leveled loggers used by the scanner and the CLI.
//
// Messages are printf-style and written one per line as "[LEVEL] message".
// Implementations are safe for concurrent use.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level orders log severities; higher is more severe.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel accepts debug, info, warn (or warning) and error, case-insensitive.
func ParseLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return LevelInfo, nil
	case "debug", "trace":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", raw)
	}
}

// Logger is the logging surface the engine and commands depend on.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgCyan),
	LevelInfo:  color.New(color.FgBlue),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
}

// ConsoleLogger writes level-filtered lines to a writer. A nil writer
// discards everything.
type ConsoleLogger struct {
	mu       sync.Mutex
	w        io.Writer
	min      Level
	colorize bool
}

// NewConsoleLogger returns a logger that drops messages below min. When
// colorize is true the level tag is colored.
func NewConsoleLogger(w io.Writer, min Level, colorize bool) *ConsoleLogger {
	return &ConsoleLogger{w: w, min: min, colorize: colorize}
}

func (l *ConsoleLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *ConsoleLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *ConsoleLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *ConsoleLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

func (l *ConsoleLogger) log(level Level, format string, args ...any) {
	if l == nil || l.w == nil || level < l.min {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	tag := level.String()
	if l.colorize {
		c := *levelColors[level]
		c.EnableColor()
		tag = c.Sprint(tag)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "[%s] %s\n", tag, msg)
}

// NullLogger discards all messages.
type NullLogger struct{}

func (NullLogger) Debug(string, ...any) {}
func (NullLogger) Info(string, ...any)  {}
func (NullLogger) Warn(string, ...any)  {}
func (NullLogger) Error(string, ...any) {}

// OrNull returns l, or a NullLogger when l is nil.
func OrNull(l Logger) Logger {
	if l == nil {
		return NullLogger{}
	}
	return l
}

// Tee fans every message out to each non-nil logger.
func Tee(loggers ...Logger) Logger {
	out := make(teeLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	switch len(out) {
	case 0:
		return NullLogger{}
	case 1:
		return out[0]
	}
	return out
}

type teeLogger []Logger

func (t teeLogger) Debug(format string, args ...any) {
	for _, l := range t {
		l.Debug(format, args...)
	}
}

func (t teeLogger) Info(format string, args ...any) {
	for _, l := range t {
		l.Info(format, args...)
	}
}

func (t teeLogger) Warn(format string, args ...any) {
	for _, l := range t {
		l.Warn(format, args...)
	}
}

func (t teeLogger) Error(format string, args ...any) {
	for _, l := range t {
		l.Error(format, args...)
	}
}
