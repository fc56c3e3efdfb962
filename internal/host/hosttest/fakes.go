// Package hosttest provides in-memory fakes of the host services for
// tests.
package hosttest

import (
	"fmt"

	"restock-engine/internal/host"
)

// Catalog is a fixed product list
type Catalog struct {
	Products []host.Product
	Err      error
}

func (c *Catalog) ListProducts() ([]host.Product, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Products, nil
}

// Inventory serves unit counts from maps
type Inventory struct {
	Units  map[int]int
	Splits map[int]host.UnitSplit
}

func (i *Inventory) CurrentUnits(id int) int {
	return i.Units[id]
}

func (i *Inventory) CurrentUnitsSplit(id int) host.UnitSplit {
	return i.Splits[id]
}

// Display marks products as displayed
type Display struct {
	Displayed map[int]bool
}

func (d *Display) IsOnDisplay(id int) bool {
	return d.Displayed[id]
}

// Price serves prices from maps; a missing id fails the lookup
type Price struct {
	UnitPrices map[int]float64
	BoxPrices  map[int]float64
}

func (p *Price) CurrentUnitPrice(id int) (float64, error) {
	price, ok := p.UnitPrices[id]
	if !ok {
		return 0, fmt.Errorf("no unit price for id %d", id)
	}
	return price, nil
}

func (p *Price) CurrentBoxPrice(id int) (float64, error) {
	price, ok := p.BoxPrices[id]
	if !ok {
		return 0, fmt.Errorf("no box price for id %d", id)
	}
	return price, nil
}

// Money is a fixed balance
type Money struct {
	Funds float64
}

func (m *Money) CurrentFunds() float64 {
	return m.Funds
}

// CartAdd records one cart addition
type CartAdd struct {
	ID        int
	UnitPrice float64
}

// Cart simulates the host restock cart. Capacity 0 means unlimited.
type Cart struct {
	Capacity   int
	Shipping   float64
	Disallowed bool

	Items     []CartAdd
	Adds      []CartAdd // every addition across the whole run
	Purchases int
}

func (c *Cart) AddUnit(id int, unitPrice float64) {
	add := CartAdd{ID: id, UnitPrice: unitPrice}
	c.Items = append(c.Items, add)
	c.Adds = append(c.Adds, add)
}

func (c *Cart) CartTotal() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.UnitPrice
	}
	return total
}

func (c *Cart) ShippingCost() float64 {
	return c.Shipping
}

func (c *Cart) ItemCountInCart() int {
	return len(c.Items)
}

func (c *Cart) IsCartFull(includePending bool) bool {
	return c.Capacity > 0 && len(c.Items) >= c.Capacity
}

func (c *Cart) Purchase() {
	c.Purchases++
	c.Items = nil
}

func (c *Cart) OrderingDisallowed() bool {
	return c.Disallowed
}

// Services bundles the fakes into a host service set
func Services(catalog *Catalog, inventory *Inventory, display *Display, price *Price, cart *Cart, money *Money) host.Services {
	return host.Services{
		Catalog:   catalog,
		Inventory: inventory,
		Display:   display,
		Price:     price,
		Cart:      cart,
		Money:     money,
	}
}
