package stock

import (
	"restock-engine/config"
	"restock-engine/internal/host"
)

// Record is the per-product demand model and stock-state holder.
// One Record exists per stocked product for the process lifetime.
// Records carry no locking of their own; the owning engine serializes
// all access to them.
type Record struct {
	ID       int
	Name     string
	Brand    string
	Category string

	// BoxSize is the number of units per wholesale box, always >= 1.
	BoxSize int

	// saleCounts is a fixed-size sliding window of per-day sale counts,
	// newest last. Its length never exceeds the configured averaging days.
	saleCounts []int

	// currentDaySaleCount accumulates sales for the day in progress.
	currentDaySaleCount int

	inventory host.InventoryService
	display   host.DisplayService
	cfg       *config.StockConfig
}

// Snapshot is the persisted form of a Record
type Snapshot struct {
	ID              int   `json:"id"`
	SaleCounts      []int `json:"saleCounts"`
	CurrentDayCount int   `json:"currentDayCount"`
}
