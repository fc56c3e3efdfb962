package execution

import (
	"context"
	"time"

	"restock-engine/config"
	"restock-engine/internal/host"
	"restock-engine/internal/logger"
)

// NewExecutor creates an order executor
func NewExecutor(cart host.CartService, money host.MoneyService, cfg *config.StockConfig, pacer Pacer, log *logger.Logger) *Executor {
	return &Executor{
		cart:  cart,
		money: money,
		cfg:   cfg,
		pacer: pacer,
		log:   log,
	}
}

// Run drains the plan against the live cart, money, and price state.
// Host services are re-read on every iteration; nothing is cached
// across the loop because another actor can spend money or fill the
// cart while a run is suspended.
func (e *Executor) Run(ctx context.Context, plan []*OrderItem) Result {
	result := Result{Outcome: Completed}

	if len(plan) == 0 {
		return result
	}

	if e.cart.OrderingDisallowed() {
		e.log.Info("Cannot order at this time.")
		result.Outcome = Embargoed
		return result
	}

	for len(plan) > 0 {
		if ctx.Err() != nil {
			result.Outcome = Canceled
			return result
		}

		item := nextItem(plan)

		funds := e.money.CurrentFunds()
		available := funds - e.cfg.ProtectedFunds
		committed := e.cart.CartTotal() + e.cart.ShippingCost()

		if available < committed+item.BoxPrice {
			// First unaffordable item stops the whole run; pending cart
			// contents are still purchased.
			e.flush(&result)
			e.log.Warnf("Could not purchase all items! Player has $%.2f ($%.2f is reserved leaving $%.2f). Cart currently costs $%.2f, new item is %s $%.2f",
				funds, e.cfg.ProtectedFunds, available, committed, item.Name, item.BoxPrice)
			result.Outcome = FundsExhausted
			return result
		}

		e.cart.AddUnit(item.ID, item.UnitPrice)
		result.UnitsAdded++

		// One cart addition satisfies one wanted box.
		item.BoxesWanted--
		if item.BoxesWanted < 1 {
			plan = removeItem(plan, item.ID)
		}

		if e.cart.IsCartFull(true) {
			e.flush(&result)
			e.log.Info("Order processing part (cart maxed)")
			if err := e.pacer.Cooldown(ctx); err != nil {
				result.Outcome = Canceled
				return result
			}
		} else if err := e.pacer.Tick(ctx); err != nil {
			result.Outcome = Canceled
			return result
		}
	}

	e.flush(&result)
	e.log.Info("Order complete!")
	return result
}

// nextItem picks the item with the largest remaining want, ties broken
// by lowest id. Re-derived every iteration rather than cached.
func nextItem(plan []*OrderItem) *OrderItem {
	best := plan[0]
	for _, item := range plan[1:] {
		if item.BoxesWanted > best.BoxesWanted ||
			(item.BoxesWanted == best.BoxesWanted && item.ID < best.ID) {
			best = item
		}
	}
	return best
}

func removeItem(plan []*OrderItem, id int) []*OrderItem {
	kept := plan[:0]
	for _, item := range plan {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return kept
}

// flush purchases whatever the cart currently holds
func (e *Executor) flush(result *Result) {
	if e.cart.ItemCountInCart() > 0 {
		e.cart.Purchase()
		result.Flushes++
	}
}

// SleepPacer is the real-time pacer used against a live host
type SleepPacer struct {
	TickInterval  time.Duration
	CooldownDelay time.Duration
}

// Tick yields for one scheduling interval
func (p SleepPacer) Tick(ctx context.Context) error {
	return sleepCtx(ctx, p.TickInterval)
}

// Cooldown pauses after a capacity-triggered flush
func (p SleepPacer) Cooldown(ctx context.Context) error {
	return sleepCtx(ctx, p.CooldownDelay)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
