package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	instance      *Logger
	instancePath  string
	instanceDebug bool
	once          sync.Once
)

// Logger struct
type Logger struct {
	zl zerolog.Logger
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    os.Getenv("TERM") == "",
	}
}

func newLogger(w io.Writer, debugMode bool) *Logger {
	level := zerolog.InfoLevel
	if debugMode {
		level = zerolog.DebugLevel
	}
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger().Level(level)}
}

// NewLogger creates the process logger (singleton). Messages go to the
// console and, when logFilePath is set, to that file as JSON lines.
//
// Only the first call to NewLogger or GetLogger configures the logger.
// Later NewLogger calls with different arguments return the existing
// logger and log a warning that their arguments were ignored.
func NewLogger(logFilePath string, debugMode bool) *Logger {
	created := false
	once.Do(func() {
		initLogger(logFilePath, debugMode)
		created = true
	})
	if !created && (logFilePath != instancePath || debugMode != instanceDebug) {
		instance.Warn(fmt.Sprintf("Logger already initialized; ignoring log file %q and debug=%t", logFilePath, debugMode))
	}
	return instance
}

func initLogger(logFilePath string, debugMode bool) {
	var w io.Writer = newConsoleWriter(os.Stdout)

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			log.Fatalf("Failed to create log directory: %v", err)
		}
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		w = zerolog.MultiLevelWriter(w, file)
	}

	instance = newLogger(w, debugMode)
	instancePath = logFilePath
	instanceDebug = debugMode
}

// GetLogger retrieves the singleton logger instance, falling back to a
// console-only logger at info level if NewLogger was never called.
func GetLogger() *Logger {
	once.Do(func() { initLogger("", false) })
	return instance
}

// Logging methods
func (l *Logger) Info(message string) {
	l.zl.Info().Msg(message)
}

func (l *Logger) Warn(message string) {
	l.zl.Warn().Msg(message)
}

func (l *Logger) Error(message string) {
	l.zl.Error().Msg(message)
}

func (l *Logger) Debug(message string) {
	l.zl.Debug().Msg(message)
}

// With returns a child logger that adds key=value to every message.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}
