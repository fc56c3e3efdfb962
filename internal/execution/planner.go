package execution

import (
	"math"
	"sort"

	"restock-engine/internal/host"
	"restock-engine/internal/logger"
	"restock-engine/internal/stock"
)

// NewPlanner creates an order planner
func NewPlanner(price host.PriceService, log *logger.Logger) *Planner {
	return &Planner{
		price: price,
		log:   log,
	}
}

// BuildPlan computes the shortfall list. Only displayed products with a
// positive stock delta are restocked: a product not on display has no
// external demand. A failed price lookup (catalog mismatch) skips that
// product with a logged error and never aborts the plan. The returned
// plan is sorted largest shortfall first for reporting; the executor
// re-derives its own order each iteration.
func (p *Planner) BuildPlan(records []*stock.Record) []*OrderItem {
	plan := make([]*OrderItem, 0)

	for _, record := range records {
		if !record.OnDisplay() {
			continue
		}
		if record.StockDelta() <= 0 {
			continue
		}

		targetBoxes := record.TargetStockBoxes()
		averageBoxes := record.AverageSoldBoxes()
		inStorageBoxes := record.CurrentStockBoxes()

		unitPrice, err := p.price.CurrentUnitPrice(record.ID)
		if err != nil {
			p.log.Errorf("Skipping %s: no unit price: %v", record.ProductLabel(), err)
			continue
		}
		boxPrice, err := p.price.CurrentBoxPrice(record.ID)
		if err != nil {
			p.log.Errorf("Skipping %s: no box price: %v", record.ProductLabel(), err)
			continue
		}

		p.log.Infof("%5.2f/%5.2f supply based on average usage of %5.2f boxes per day for item %s",
			inStorageBoxes, targetBoxes, averageBoxes, record.ProductLabel())

		plan = append(plan, &OrderItem{
			ID:          record.ID,
			Name:        record.Name,
			BoxesWanted: int(math.Ceil(targetBoxes - inStorageBoxes)),
			UnitPrice:   unitPrice,
			BoxPrice:    boxPrice,
		})
	}

	sort.Slice(plan, func(i, j int) bool {
		if plan[i].BoxesWanted != plan[j].BoxesWanted {
			return plan[i].BoxesWanted > plan[j].BoxesWanted
		}
		return plan[i].ID < plan[j].ID
	})

	if len(plan) == 0 {
		p.log.Info("No new order, all items are in stock!")
		return plan
	}

	p.log.Info("New order generated:")
	totalPrice := 0.0
	for _, item := range plan {
		p.log.Infof("%3d boxes of (%d)%s at price %.2f", item.BoxesWanted, item.ID, item.Name, item.BoxPrice)
		totalPrice += item.BoxPrice * float64(item.BoxesWanted)
	}
	p.log.Infof("Total price: %.2f", totalPrice)

	return plan
}
