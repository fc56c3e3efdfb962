package UI

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"restock-engine/internal/engine"
	"restock-engine/internal/logger"
)

type Tab int

const (
	TabStatus Tab = iota
	TabDeltas
	TabLog
)

// tickMsg drives the periodic refresh of the panel
type tickMsg time.Time

// Model is the bubbletea model of the monitor panel
type Model struct {
	engine *engine.Engine
	log    *logger.Logger

	activeTab Tab
	width     int
	height    int

	deltaReport string
	statusLine  string
	logView     viewport.Model
	ready       bool
}
