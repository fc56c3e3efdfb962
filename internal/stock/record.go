package stock

import (
	"fmt"

	"restock-engine/config"
	"restock-engine/internal/host"
)

// NewRecord creates a fresh record for a product first seen this session
func NewRecord(product host.Product, inventory host.InventoryService, display host.DisplayService, cfg *config.StockConfig) *Record {
	boxSize := product.BoxSize
	if boxSize < 1 {
		boxSize = 1
	}

	return &Record{
		ID:         product.ID,
		Name:       product.Name,
		Brand:      product.Brand,
		Category:   product.Category,
		BoxSize:    boxSize,
		saleCounts: make([]int, 0),
		inventory:  inventory,
		display:    display,
		cfg:        cfg,
	}
}

// Restore rebuilds a record from its persisted snapshot
func Restore(snap Snapshot, product host.Product, inventory host.InventoryService, display host.DisplayService, cfg *config.StockConfig) *Record {
	r := NewRecord(product, inventory, display, cfg)
	r.saleCounts = append(r.saleCounts, snap.SaleCounts...)
	r.currentDaySaleCount = snap.CurrentDayCount
	return r
}

// Snapshot returns the persisted form of the record
func (r *Record) Snapshot() Snapshot {
	counts := make([]int, len(r.saleCounts))
	copy(counts, r.saleCounts)
	return Snapshot{
		ID:              r.ID,
		SaleCounts:      counts,
		CurrentDayCount: r.currentDaySaleCount,
	}
}

// AverageSold returns the mean daily units sold over the sales window,
// 0 while the window is empty.
func (r *Record) AverageSold() float64 {
	if len(r.saleCounts) == 0 {
		return 0
	}
	sum := 0
	for _, c := range r.saleCounts {
		sum += c
	}
	return float64(sum) / float64(len(r.saleCounts))
}

// AverageSoldBoxes returns the mean daily demand expressed in boxes
func (r *Record) AverageSoldBoxes() float64 {
	return r.toBoxCount(r.AverageSold())
}

// TargetStockBoxes returns the desired on-hand stock in boxes: average
// demand times the days-to-stock setting, floored at the minimum boxes
// setting.
func (r *Record) TargetStockBoxes() float64 {
	target := r.AverageSoldBoxes() * float64(r.cfg.DaysToStock)
	if target < float64(r.cfg.MinBoxes) {
		target = float64(r.cfg.MinBoxes)
	}
	return target
}

// CurrentStorageUnits reads the live unit count from the host. With
// IncludeDisplay off only back-storage and in-transit units count.
func (r *Record) CurrentStorageUnits() int {
	if r.cfg.IncludeDisplay {
		return r.inventory.CurrentUnits(r.ID)
	}
	split := r.inventory.CurrentUnitsSplit(r.ID)
	return split.Boxed + split.InTransit
}

// CurrentStockBoxes returns the live stock level in boxes
func (r *Record) CurrentStockBoxes() float64 {
	return r.toBoxCount(float64(r.CurrentStorageUnits()))
}

// StockDelta returns target minus current stock in boxes; positive
// means understocked.
func (r *Record) StockDelta() float64 {
	return r.TargetStockBoxes() - r.CurrentStockBoxes()
}

// OnDisplay reports whether the product is on a shop-floor display
func (r *Record) OnDisplay() bool {
	return r.display.IsOnDisplay(r.ID)
}

// AddSale records a single loose-unit sale
func (r *Record) AddSale() {
	r.currentDaySaleCount++
}

// AddSaleCount records a multi-unit sale, e.g. a bagged quantity
func (r *Record) AddSaleCount(count int) {
	r.currentDaySaleCount += count
}

// CurrentDaySaleCount returns the in-progress day's accumulator
func (r *Record) CurrentDaySaleCount() int {
	return r.currentDaySaleCount
}

// SaleWindow returns a copy of the sales window, oldest first
func (r *Record) SaleWindow() []int {
	counts := make([]int, len(r.saleCounts))
	copy(counts, r.saleCounts)
	return counts
}

// RolloverDay shifts the day boundary: the in-progress count joins the
// window at the newest end, the oldest entries are evicted while the
// window exceeds the configured averaging days, and the counter resets.
// A second call at the same boundary records a zero-sale day.
func (r *Record) RolloverDay() {
	r.saleCounts = append(r.saleCounts, r.currentDaySaleCount)
	for len(r.saleCounts) > r.cfg.AveragingDays {
		r.saleCounts = r.saleCounts[1:]
	}
	r.currentDaySaleCount = 0
}

func (r *Record) toBoxCount(units float64) float64 {
	return units / float64(r.BoxSize)
}

// ProductLabel renders the product for log lines
func (r *Record) ProductLabel() string {
	if r.Brand == "" {
		return fmt.Sprintf("%s(%d)", r.Name, r.ID)
	}
	return fmt.Sprintf("%s - %s(%d)", r.Name, r.Brand, r.ID)
}

// RolloverInfo renders the post-rollover demand summary for log lines
func (r *Record) RolloverInfo() string {
	return fmt.Sprintf("Average/Day:%6.2f count, %5.2f boxes for %s",
		r.AverageSold(), r.AverageSoldBoxes(), r.ProductLabel())
}
