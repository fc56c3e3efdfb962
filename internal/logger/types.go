package logger

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entry is one captured log line, kept for the UI log tail
type Entry struct {
	Timestamp time.Time
	Level     string
	Message   string
}

// Logger writes structured logs through zap and keeps a bounded
// in-memory tail of recent entries for the monitor panel.
type Logger struct {
	mu      sync.RWMutex
	sugar   *zap.SugaredLogger
	entries []Entry
	maxSize int
}
