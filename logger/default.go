package logger

import (
	"os"
	"sync"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/destination"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	l, err := NewBuilder().
		WithDestinations(destination.NewConsoleDestination(destination.ConsoleConfig{Writer: os.Stderr})).
		Build()
	if err != nil {
		panic(err)
	}
	defaultLogger = l
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger. The previous one is not closed.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// DeleteAllLogFiles runs DeleteAllLogFiles on the default logger
func DeleteAllLogFiles() bool {
	return Default().DeleteAllLogFiles()
}

// DeleteSuccessfulLogFiles runs DeleteSuccessfulLogFiles on the default logger
func DeleteSuccessfulLogFiles() bool {
	return Default().DeleteSuccessfulLogFiles()
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().Info(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	Default().Warn(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().Error(msg, fields...)
}
