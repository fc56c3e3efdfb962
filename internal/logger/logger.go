package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a logger writing to the given file at the given level,
// keeping the last maxSize entries in memory.
func NewLogger(logFile, level string, maxSize int) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{
		sugar:   zl.Sugar(),
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
	}, nil
}

// NewNop creates a logger that captures entries but writes nowhere.
// Used by tests.
func NewNop(maxSize int) *Logger {
	return &Logger{
		sugar:   zap.NewNop().Sugar(),
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
	}
}

func (l *Logger) capture(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
	})

	// Keep only the last maxSize entries
	if len(l.entries) > l.maxSize {
		l.entries = l.entries[len(l.entries)-l.maxSize:]
	}
}

// Infof logs an informational message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
	l.capture("INFO", format, args...)
}

// Info logs an informational message
func (l *Logger) Info(args ...interface{}) {
	msg := fmt.Sprint(args...)
	l.sugar.Info(msg)
	l.capture("INFO", "%s", msg)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
	l.capture("WARN", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(args ...interface{}) {
	msg := fmt.Sprint(args...)
	l.sugar.Warn(msg)
	l.capture("WARN", "%s", msg)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
	l.capture("ERROR", format, args...)
}

// Error logs an error message
func (l *Logger) Error(args ...interface{}) {
	msg := fmt.Sprint(args...)
	l.sugar.Error(msg)
	l.capture("ERROR", "%s", msg)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
	l.capture("DEBUG", format, args...)
}

// Tail returns a copy of the most recent n captured entries
func (l *Logger) Tail(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	tail := make([]Entry, n)
	copy(tail, l.entries[len(l.entries)-n:])
	return tail
}

// Count returns the number of captured entries
func (l *Logger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Sync flushes buffered log output
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
