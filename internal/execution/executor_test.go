package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-engine/config"
	"restock-engine/internal/host/hosttest"
	"restock-engine/internal/logger"
)

type countingPacer struct {
	ticks     int
	cooldowns int
}

func (p *countingPacer) Tick(ctx context.Context) error     { p.ticks++; return ctx.Err() }
func (p *countingPacer) Cooldown(ctx context.Context) error { p.cooldowns++; return ctx.Err() }

func newExecutorFixture(cart *hosttest.Cart, funds float64) (*Executor, *countingPacer) {
	pacer := &countingPacer{}
	cfg := &config.StockConfig{}
	e := NewExecutor(cart, &hosttest.Money{Funds: funds}, cfg, pacer, logger.NewNop(50))
	return e, pacer
}

func TestRunEmptyPlanDoesNothing(t *testing.T) {
	cart := &hosttest.Cart{}
	e, _ := newExecutorFixture(cart, 1000)

	result := e.Run(context.Background(), nil)
	assert.Equal(t, Completed, result.Outcome)
	assert.Empty(t, cart.Adds)
	assert.Zero(t, cart.Purchases)
}

func TestRunEmbargoEndsWithoutSpending(t *testing.T) {
	cart := &hosttest.Cart{Disallowed: true}
	e, pacer := newExecutorFixture(cart, 1000)

	plan := []*OrderItem{{ID: 1, Name: "A", BoxesWanted: 3, UnitPrice: 1, BoxPrice: 10}}
	result := e.Run(context.Background(), plan)

	assert.Equal(t, Embargoed, result.Outcome)
	assert.Empty(t, cart.Adds)
	assert.Zero(t, cart.Purchases)
	assert.Zero(t, pacer.ticks)
	// The plan itself is untouched on embargo.
	assert.Equal(t, 3, plan[0].BoxesWanted)
}

func TestRunCompletesWholePlan(t *testing.T) {
	cart := &hosttest.Cart{}
	e, pacer := newExecutorFixture(cart, 1000)

	plan := []*OrderItem{
		{ID: 1, Name: "A", BoxesWanted: 2, UnitPrice: 10, BoxPrice: 10},
		{ID: 2, Name: "B", BoxesWanted: 1, UnitPrice: 5, BoxPrice: 5},
	}
	result := e.Run(context.Background(), plan)

	assert.Equal(t, Completed, result.Outcome)
	assert.Equal(t, 3, result.UnitsAdded)
	assert.Equal(t, 1, cart.Purchases, "one final flush")
	assert.Equal(t, 3, pacer.ticks)
	assert.Zero(t, pacer.cooldowns)
}

func TestRunDrainsLargestWantFirst(t *testing.T) {
	cart := &hosttest.Cart{}
	e, _ := newExecutorFixture(cart, 1000)

	// Selection follows remaining want, not price: the expensive B only
	// starts once A's remaining want has dropped to B's level.
	plan := []*OrderItem{
		{ID: 1, Name: "A", BoxesWanted: 3, UnitPrice: 1, BoxPrice: 10},
		{ID: 2, Name: "B", BoxesWanted: 1, UnitPrice: 1, BoxPrice: 50},
	}
	result := e.Run(context.Background(), plan)

	assert.Equal(t, Completed, result.Outcome)
	require.Len(t, cart.Adds, 4)
	assert.Equal(t, []int{1, 1, 1, 2}, addedIDs(cart))
}

func TestRunTieBreaksByLowestID(t *testing.T) {
	cart := &hosttest.Cart{}
	e, _ := newExecutorFixture(cart, 1000)

	plan := []*OrderItem{
		{ID: 7, Name: "B", BoxesWanted: 2, UnitPrice: 1, BoxPrice: 1},
		{ID: 3, Name: "A", BoxesWanted: 2, UnitPrice: 1, BoxPrice: 1},
	}
	e.Run(context.Background(), plan)

	assert.Equal(t, []int{3, 7, 3, 7}, addedIDs(cart))
}

func TestRunStopsAtFirstUnaffordableItem(t *testing.T) {
	// A(want 5, price 10) drains first at 50. B's box costs 50: with 90
	// of funds the budget check sees 50 committed + 50 > 90 and stops
	// without purchasing any B, flushing the pending cart.
	cart := &hosttest.Cart{}
	e, _ := newExecutorFixture(cart, 90)

	plan := []*OrderItem{
		{ID: 1, Name: "A", BoxesWanted: 5, UnitPrice: 10, BoxPrice: 10},
		{ID: 2, Name: "B", BoxesWanted: 2, UnitPrice: 50, BoxPrice: 50},
	}
	result := e.Run(context.Background(), plan)

	assert.Equal(t, FundsExhausted, result.Outcome)
	assert.Equal(t, 5, result.UnitsAdded)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, addedIDs(cart))
	assert.Equal(t, 1, cart.Purchases, "pending cart contents are flushed")
}

func TestRunRespectsProtectedFunds(t *testing.T) {
	cart := &hosttest.Cart{}
	pacer := &countingPacer{}
	cfg := &config.StockConfig{ProtectedFunds: 95}
	e := NewExecutor(cart, &hosttest.Money{Funds: 100}, cfg, pacer, logger.NewNop(50))

	plan := []*OrderItem{{ID: 1, Name: "A", BoxesWanted: 1, UnitPrice: 10, BoxPrice: 10}}
	result := e.Run(context.Background(), plan)

	assert.Equal(t, FundsExhausted, result.Outcome)
	assert.Empty(t, cart.Adds)
	assert.Zero(t, cart.Purchases, "nothing pending, nothing flushed")
}

func TestRunBudgetIncludesShipping(t *testing.T) {
	cart := &hosttest.Cart{Shipping: 15}
	e, _ := newExecutorFixture(cart, 20)

	plan := []*OrderItem{{ID: 1, Name: "A", BoxesWanted: 1, UnitPrice: 10, BoxPrice: 10}}
	result := e.Run(context.Background(), plan)

	assert.Equal(t, FundsExhausted, result.Outcome)
	assert.Empty(t, cart.Adds)
}

func TestRunFlushesAndCoolsDownAtCapacity(t *testing.T) {
	cart := &hosttest.Cart{Capacity: 3}
	e, pacer := newExecutorFixture(cart, 1000)

	plan := []*OrderItem{{ID: 1, Name: "A", BoxesWanted: 5, UnitPrice: 1, BoxPrice: 1}}
	result := e.Run(context.Background(), plan)

	assert.Equal(t, Completed, result.Outcome)
	assert.Equal(t, 5, result.UnitsAdded)
	// Flush at the 3rd addition, then a final flush for the last 2.
	assert.Equal(t, 2, cart.Purchases)
	assert.Equal(t, 1, pacer.cooldowns)
	assert.Equal(t, 4, pacer.ticks)
}

func TestRunCanceledContext(t *testing.T) {
	cart := &hosttest.Cart{}
	e, _ := newExecutorFixture(cart, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := []*OrderItem{{ID: 1, Name: "A", BoxesWanted: 2, UnitPrice: 1, BoxPrice: 1}}
	result := e.Run(ctx, plan)
	assert.Equal(t, Canceled, result.Outcome)
	assert.Empty(t, cart.Adds)
}

func addedIDs(cart *hosttest.Cart) []int {
	ids := make([]int, 0, len(cart.Adds))
	for _, add := range cart.Adds {
		ids = append(ids, add.ID)
	}
	return ids
}
