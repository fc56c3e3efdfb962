package engine

import (
	"sync"
	"sync/atomic"

	"restock-engine/config"
	"restock-engine/internal/execution"
	"restock-engine/internal/host"
	"restock-engine/internal/logger"
	"restock-engine/internal/stock"
	"restock-engine/internal/store"
)

// Engine owns the stock records for the process lifetime and exposes
// the entry points the host event hooks drive: sale recording, day
// rollover, saving, and order runs.
type Engine struct {
	cfg      *config.Config
	log      *logger.Logger
	services host.Services
	store    *store.Store

	// mu guards records, byID, and lastResult. Sale events arrive on
	// the bridge read loop while the monitor panel and order runs read
	// the same records from their own goroutines.
	mu         sync.RWMutex
	records    []*stock.Record
	byID       map[int]*stock.Record
	lastResult *execution.Result

	planner  *execution.Planner
	executor *execution.Executor

	// running guards the single order run allowed in flight.
	running atomic.Bool
}
