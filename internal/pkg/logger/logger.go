package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger routes application log calls to zerolog.
// Debug, Info and Warn are only emitted when verbose; errors always are.
type Logger struct {
	zl      zerolog.Logger
	verbose bool
}

// New creates a console logger writing to stderr.
func New(verbose bool) *Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, verbose)
}

// NewWithWriter creates a logger writing JSON lines to w.
func NewWithWriter(w io.Writer, verbose bool) *Logger {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return &Logger{
		zl:      zerolog.New(w).Level(level).With().Timestamp().Logger(),
		verbose: verbose,
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.zl.Error().Err(err).Fields(fields).Msg(msg)
}

// Verbose reports whether debug output is enabled.
func (l *Logger) Verbose() bool {
	return l.verbose
}
