package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"restock-engine/internal/stock"
)

// DeltaOutliers returns the displayed records with the largest positive
// (understocked) and most negative (overstocked) stock deltas, at most
// limit of each, ignoring deltas smaller than minDelta in magnitude.
func (e *Engine) DeltaOutliers(limit int, minDelta float64) (top, bottom []*stock.Record) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deltaOutliers(limit, minDelta)
}

func (e *Engine) deltaOutliers(limit int, minDelta float64) (top, bottom []*stock.Record) {
	for _, record := range e.records {
		if !record.OnDisplay() {
			continue
		}
		delta := record.StockDelta()
		if math.Abs(delta) < minDelta {
			continue
		}
		if delta > 0 {
			top = append(top, record)
		} else if delta < 0 {
			bottom = append(bottom, record)
		}
	}

	sort.Slice(top, func(i, j int) bool {
		return top[i].StockDelta() > top[j].StockDelta()
	})
	sort.Slice(bottom, func(i, j int) bool {
		return bottom[i].StockDelta() < bottom[j].StockDelta()
	})

	if len(top) > limit {
		top = top[:limit]
	}
	if len(bottom) > limit {
		bottom = bottom[:limit]
	}
	return top, bottom
}

// OutlierReport renders the delta outlier report shown in the log and
// the monitor panel.
func (e *Engine) OutlierReport(limit int, minDelta float64) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	top, bottom := e.deltaOutliers(limit, minDelta)

	var b strings.Builder
	b.WriteString("===================================\n")
	fmt.Fprintf(&b, "Showing deltas with a minimum of %.0f\n", minDelta)
	b.WriteString("Top stock deltas:\n")
	if len(top) > 0 {
		for _, r := range top {
			fmt.Fprintf(&b, "dBox %8.2f | Stock: %5.1f | %s\n", r.StockDelta(), r.CurrentStockBoxes(), r.ProductLabel())
		}
	} else {
		b.WriteString("[no positive deltas]\n")
	}

	b.WriteString("\nBottom stock deltas:\n")
	if len(bottom) > 0 {
		for _, r := range bottom {
			fmt.Fprintf(&b, "dBox %8.2f | Stock: %5.1f | %s\n", r.StockDelta(), r.CurrentStockBoxes(), r.ProductLabel())
		}
	} else {
		b.WriteString("[no negative deltas]\n")
	}
	return b.String()
}

// LogOutliers writes the delta outlier report to the log
func (e *Engine) LogOutliers() {
	e.log.Info("\n" + e.OutlierReport(10, 1))
}
