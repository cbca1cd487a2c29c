// Package logger provides leveled, prefixed console logging with colored component tags.
package logger

import (
	"errors"
	"io"
	"log"

	"github.com/gookit/color"
)

var (
	ErrEmptyPrefix = errors.New("logger prefix must not be empty")
	ErrNilWriter   = errors.New("logger writer must not be nil")
)

// Component colors used by the application loggers.
const (
	ColorGreen  = color.FgGreen
	ColorCyan   = color.FgCyan
	ColorBlue   = color.FgBlue
	ColorPurple = color.FgMagenta
	ColorYellow = color.FgYellow
)

// Logger writes lines of the form "[PREFIX] [LEVEL] message".
type Logger struct {
	tag string
	out *log.Logger
}

// New creates a logger tagging every line with prefix rendered in c.
func New(prefix string, c color.Color, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	return &Logger{
		tag: c.Sprintf("[%s]", prefix),
		out: log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(color.FgLightWhite, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(color.FgYellow, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(color.FgRed, "ERROR", msg)
}

func (l *Logger) write(c color.Color, level, msg string) {
	l.out.Printf("%s %s %s", l.tag, c.Sprintf("[%s]", level), msg)
}
