// Package host declares the contracts of the game-side services the
// engine consumes. The engine never owns money, cart contents, or
// physical inventory; it treats these handles as authoritative live
// reads and writes on every access.
package host

// Product is one catalog entry as reported by the host at startup
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	BoxSize  int    `json:"boxSize"` // units per wholesale box, always >= 1
}

// UnitSplit breaks a product's unit count down by where the units are
type UnitSplit struct {
	Displayed int `json:"displayed"`
	Boxed     int `json:"boxed"`
	InTransit int `json:"inTransit"`
}

// SaleEvent reports one checkout scan. BagCount is nil for loose-unit
// sales; multi-unit bagged sales carry the bagged quantity.
type SaleEvent struct {
	ProductID int  `json:"productId"`
	BagCount  *int `json:"bagCount,omitempty"`
}

// CatalogService lists the stocked product catalog
type CatalogService interface {
	ListProducts() ([]Product, error)
}

// InventoryService reads live physical unit counts
type InventoryService interface {
	CurrentUnits(id int) int
	CurrentUnitsSplit(id int) UnitSplit
}

// DisplayService reports whether a product is on a shop-floor display
type DisplayService interface {
	IsOnDisplay(id int) bool
}

// PriceService resolves current wholesale prices. Lookups fail when the
// id is unknown to the host catalog.
type PriceService interface {
	CurrentUnitPrice(id int) (float64, error)
	CurrentBoxPrice(id int) (float64, error)
}

// CartService drives the host's restock shopping cart
type CartService interface {
	AddUnit(id int, unitPrice float64)
	CartTotal() float64
	ShippingCost() float64
	ItemCountInCart() int
	IsCartFull(includePending bool) bool
	Purchase()
	OrderingDisallowed() bool
}

// MoneyService reads the player's live currency balance
type MoneyService interface {
	CurrentFunds() float64
}

// Services bundles every host handle the engine needs
type Services struct {
	Catalog   CatalogService
	Inventory InventoryService
	Display   DisplayService
	Price     PriceService
	Cart      CartService
	Money     MoneyService
}
