package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"restock-engine/config"
	"restock-engine/internal/execution"
	"restock-engine/internal/host"
	"restock-engine/internal/logger"
	"restock-engine/internal/stock"
	"restock-engine/internal/store"
)

// NewEngine builds the record set from the host catalog, overlaying any
// persisted counters by product id. A missing save file starts fresh; a
// corrupt one is logged and likewise starts fresh. Snapshot ids with no
// catalog product are dropped, products new since the last save start
// with empty history.
func NewEngine(cfg *config.Config, services host.Services, st *store.Store, pacer execution.Pacer, log *logger.Logger) (*Engine, error) {
	products, err := services.Catalog.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog products: %w", err)
	}

	log.Infof("Inventory management initializing, adding %d products.", len(products))

	snapshots, err := st.Load()
	if err != nil {
		log.Errorf("Error loading saved inventory data: %v", err)
		snapshots = nil
	}
	snapByID := make(map[int]stock.Snapshot, len(snapshots))
	for _, snap := range snapshots {
		snapByID[snap.ID] = snap
	}

	e := &Engine{
		cfg:      cfg,
		log:      log,
		services: services,
		store:    st,
		records:  make([]*stock.Record, 0, len(products)),
		byID:     make(map[int]*stock.Record, len(products)),
		planner:  execution.NewPlanner(services.Price, log),
		executor: execution.NewExecutor(services.Cart, services.Money, &cfg.Stock, pacer, log),
	}

	for _, product := range products {
		snap, ok := snapByID[product.ID]
		var record *stock.Record
		if ok {
			record = stock.Restore(snap, product, services.Inventory, services.Display, &cfg.Stock)
			delete(snapByID, product.ID)
		} else {
			record = stock.NewRecord(product, services.Inventory, services.Display, &cfg.Stock)
		}
		e.records = append(e.records, record)
		e.byID[product.ID] = record
	}

	for id := range snapByID {
		log.Warnf("Dropping saved record for unknown product id %d", id)
	}
	if len(snapshots) > 0 {
		log.Infof("Loaded inventory data from %s", st.Path())
	}

	return e, nil
}

// Records returns the full record set
func (e *Engine) Records() []*stock.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.records
}

// RecordSale routes one checkout scan to its record. A sale for an id
// with no record is logged and skipped; it never corrupts state.
func (e *Engine) RecordSale(ev host.SaleEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok := e.byID[ev.ProductID]
	if !ok {
		e.log.Errorf("No stock record found for product (%d)", ev.ProductID)
		return
	}

	if ev.BagCount != nil {
		record.AddSaleCount(*ev.BagCount)
	} else {
		record.AddSale()
	}
}

// RolloverDay shifts every record's sales window across the day
// boundary, then logs the demand summary sorted by average boxes.
func (e *Engine) RolloverDay() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, record := range e.records {
		record.RolloverDay()
	}

	sorted := make([]*stock.Record, len(e.records))
	copy(sorted, e.records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AverageSoldBoxes() > sorted[j].AverageSoldBoxes()
	})
	for _, record := range sorted {
		e.log.Info(record.RolloverInfo())
	}
}

// Save persists every record. Failures are logged, never fatal, and an
// aborted write leaves the previous save intact.
func (e *Engine) Save() {
	e.mu.RLock()
	snapshots := make([]stock.Snapshot, 0, len(e.records))
	for _, record := range e.records {
		snapshots = append(snapshots, record.Snapshot())
	}
	e.mu.RUnlock()

	if err := e.store.Save(snapshots); err != nil {
		e.log.Errorf("Cannot save inventory data at %s: %v", e.store.Path(), err)
		return
	}
	e.log.Infof("Saved inventory data to %s", e.store.Path())
}

// RunOrder plans and executes one restock run. Only one run may be in
// flight at a time; a second trigger while one is running is refused.
func (e *Engine) RunOrder(ctx context.Context) (execution.Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		e.log.Warn("Order run already in flight, ignoring trigger")
		return execution.Result{}, fmt.Errorf("order run already in flight")
	}
	defer e.running.Store(false)

	runID := uuid.New()
	e.log.Infof("Order run %s starting", runID)

	e.mu.RLock()
	plan := e.planner.BuildPlan(e.records)
	e.mu.RUnlock()
	result := e.executor.Run(ctx, plan)

	e.mu.Lock()
	e.lastResult = &result
	e.mu.Unlock()

	e.log.Infof("Order run %s finished: %s, %d units added, %d cart flushes",
		runID, result.Outcome, result.UnitsAdded, result.Flushes)
	return result, nil
}

// LastResult returns the most recent finished run, nil before any run
func (e *Engine) LastResult() *execution.Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastResult
}

// HandleDayStart applies the day-start hook: a restock run when the
// auto-restock setting is on.
func (e *Engine) HandleDayStart(ctx context.Context) {
	if !e.cfg.Stock.AutoRestockDayStart {
		return
	}
	go e.RunOrder(ctx)
}
