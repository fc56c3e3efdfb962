package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-engine/config"
	"restock-engine/internal/host"
	"restock-engine/internal/host/hosttest"
	"restock-engine/internal/logger"
	"restock-engine/internal/stock"
)

func plannerFixture() (*config.StockConfig, *hosttest.Inventory, *hosttest.Display, *hosttest.Price) {
	cfg := &config.StockConfig{MinBoxes: 2, DaysToStock: 2, AveragingDays: 3}
	inv := &hosttest.Inventory{Units: map[int]int{}, Splits: map[int]host.UnitSplit{}}
	display := &hosttest.Display{Displayed: map[int]bool{}}
	price := &hosttest.Price{UnitPrices: map[int]float64{}, BoxPrices: map[int]float64{}}
	return cfg, inv, display, price
}

func seededRecord(id, boxSize int, history []int, cfg *config.StockConfig, inv *hosttest.Inventory, display *hosttest.Display) *stock.Record {
	r := stock.NewRecord(host.Product{ID: id, Name: "P", BoxSize: boxSize}, inv, display, cfg)
	for _, daily := range history {
		r.AddSaleCount(daily)
		r.RolloverDay()
	}
	return r
}

func TestBuildPlanComputesCeilShortfall(t *testing.T) {
	cfg, inv, display, price := plannerFixture()
	display.Displayed[1] = true
	inv.Splits[1] = host.UnitSplit{Boxed: 25}
	price.UnitPrices[1] = 1.5
	price.BoxPrices[1] = 12

	// avg 30 units = 3 boxes, target 6, current 2.5, delta 3.5 -> 4 boxes.
	r := seededRecord(1, 10, []int{20, 30, 40}, cfg, inv, display)

	p := NewPlanner(price, logger.NewNop(10))
	plan := p.BuildPlan([]*stock.Record{r})

	require.Len(t, plan, 1)
	assert.Equal(t, 4, plan[0].BoxesWanted)
	assert.Equal(t, 1.5, plan[0].UnitPrice)
	assert.Equal(t, 12.0, plan[0].BoxPrice)
}

func TestBuildPlanSkipsUndisplayedAndStocked(t *testing.T) {
	cfg, inv, display, price := plannerFixture()

	// Understocked but not displayed: excluded regardless of delta.
	display.Displayed[1] = false
	price.UnitPrices[1] = 1
	price.BoxPrices[1] = 10
	hidden := seededRecord(1, 10, []int{50, 50, 50}, cfg, inv, display)

	// Displayed but fully stocked: delta <= 0.
	display.Displayed[2] = true
	inv.Splits[2] = host.UnitSplit{Boxed: 100}
	price.UnitPrices[2] = 1
	price.BoxPrices[2] = 10
	stocked := seededRecord(2, 10, []int{10, 10, 10}, cfg, inv, display)

	p := NewPlanner(price, logger.NewNop(10))
	plan := p.BuildPlan([]*stock.Record{hidden, stocked})
	assert.Empty(t, plan)
}

func TestBuildPlanSkipsUnpricedProductOnly(t *testing.T) {
	cfg, inv, display, price := plannerFixture()
	display.Displayed[1] = true
	display.Displayed[2] = true
	// Only product 2 has prices; product 1 is a catalog mismatch.
	price.UnitPrices[2] = 1
	price.BoxPrices[2] = 10

	a := seededRecord(1, 10, []int{30, 30, 30}, cfg, inv, display)
	b := seededRecord(2, 10, []int{30, 30, 30}, cfg, inv, display)

	log := logger.NewNop(10)
	p := NewPlanner(price, log)
	plan := p.BuildPlan([]*stock.Record{a, b})

	require.Len(t, plan, 1)
	assert.Equal(t, 2, plan[0].ID)
	assert.Positive(t, log.Count(), "the skip must be logged")
}

func TestBuildPlanSortsLargestShortfallFirst(t *testing.T) {
	cfg, inv, display, price := plannerFixture()
	for id := 1; id <= 3; id++ {
		display.Displayed[id] = true
		price.UnitPrices[id] = 1
		price.BoxPrices[id] = 10
	}

	small := seededRecord(1, 10, []int{10, 10, 10}, cfg, inv, display)  // target 2 -> 2 boxes
	large := seededRecord(2, 10, []int{100, 100, 100}, cfg, inv, display) // target 20 -> 20 boxes
	medium := seededRecord(3, 10, []int{40, 40, 40}, cfg, inv, display) // target 8 -> 8 boxes

	p := NewPlanner(price, logger.NewNop(10))
	plan := p.BuildPlan([]*stock.Record{small, large, medium})

	require.Len(t, plan, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{plan[0].ID, plan[1].ID, plan[2].ID})
}
