// Package logging provides the leveled stdlib-backed logger used throughout
// the service. No third-party logging library appears anywhere in the
// retrieval pack this repo was grown from, so this is the house style.
package logging

import (
	"log"
	"os"
)

// Level represents logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Logger provides leveled logging over the standard library logger.
type Logger struct {
	level Level
}

// New creates a new logger at the given level.
func New(level Level) *Logger {
	return &Logger{level: level}
}

// NewFromEnv builds a logger using the LOG_LEVEL environment variable,
// defaulting to info.
func NewFromEnv() *Logger {
	level := LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LevelError
	case "WARN":
		level = LevelWarn
	case "INFO":
		level = LevelInfo
	case "DEBUG":
		level = LevelDebug
	case "TRACE":
		level = LevelTrace
	}
	return &Logger{level: level}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LevelTrace {
		log.Printf("[TRACE] "+format, args...)
	}
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	return l.level
}

// Default is the package-level logger most callers use directly.
var Default = NewFromEnv()
