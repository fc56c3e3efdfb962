package execution

import (
	"context"

	"restock-engine/config"
	"restock-engine/internal/host"
	"restock-engine/internal/logger"
)

// OrderItem is one product's shortfall during a single order run.
// BoxesWanted counts down as cart additions are made; items are
// discarded from the plan once it drops below 1.
type OrderItem struct {
	ID          int
	Name        string
	BoxesWanted int
	UnitPrice   float64
	BoxPrice    float64
}

// Outcome is the terminal state of one order run
type Outcome int

const (
	// Completed means the whole plan was purchased.
	Completed Outcome = iota
	// Embargoed means the host disallowed ordering; nothing was spent.
	Embargoed
	// FundsExhausted means the run stopped at the first unaffordable item.
	FundsExhausted
	// Canceled means the host tore the run down mid-flight.
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Embargoed:
		return "embargoed"
	case FundsExhausted:
		return "funds exhausted"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result summarizes one finished order run
type Result struct {
	Outcome    Outcome
	UnitsAdded int
	Flushes    int
}

// Pacer controls the two suspension points of the purchase loop: a
// one-tick yield after each plain cart addition and a longer cooldown
// after a capacity-triggered flush.
type Pacer interface {
	Tick(ctx context.Context) error
	Cooldown(ctx context.Context) error
}

// Planner computes the shortfall list from the stock records
type Planner struct {
	price host.PriceService
	log   *logger.Logger
}

// Executor drives the budget- and capacity-constrained purchase loop
type Executor struct {
	cart  host.CartService
	money host.MoneyService
	cfg   *config.StockConfig
	pacer Pacer
	log   *logger.Logger
}
