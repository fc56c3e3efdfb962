package hostbridge

import (
	"restock-engine/internal/host"
)

// The client implements every host service contract. Aggregate reads
// (units, cart totals, funds) degrade to zero values on transport
// faults with a logged error; per-id price lookups surface the error so
// the planner can skip the product.

type idBody struct {
	ID int `json:"id"`
}

type addUnitBody struct {
	ID        int     `json:"id"`
	UnitPrice float64 `json:"unitPrice"`
}

type isFullBody struct {
	IncludePending bool `json:"includePending"`
}

// ListProducts fetches the stocked product catalog
func (c *Client) ListProducts() ([]host.Product, error) {
	var products []host.Product
	if err := c.request("catalog/list", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CurrentUnits reads the live total unit count for a product
func (c *Client) CurrentUnits(id int) int {
	var out struct {
		Units int `json:"units"`
	}
	if err := c.request("inventory/units", idBody{ID: id}, &out); err != nil {
		c.log.Errorf("inventory/units failed for id %d: %v", id, err)
		return 0
	}
	return out.Units
}

// CurrentUnitsSplit reads the displayed/boxed/in-transit unit breakdown
func (c *Client) CurrentUnitsSplit(id int) host.UnitSplit {
	var out host.UnitSplit
	if err := c.request("inventory/unitsSplit", idBody{ID: id}, &out); err != nil {
		c.log.Errorf("inventory/unitsSplit failed for id %d: %v", id, err)
		return host.UnitSplit{}
	}
	return out
}

// IsOnDisplay reports whether the product is on a shop-floor display
func (c *Client) IsOnDisplay(id int) bool {
	var out struct {
		OnDisplay bool `json:"onDisplay"`
	}
	if err := c.request("display/isOnDisplay", idBody{ID: id}, &out); err != nil {
		c.log.Errorf("display/isOnDisplay failed for id %d: %v", id, err)
		return false
	}
	return out.OnDisplay
}

// CurrentUnitPrice resolves the current per-unit wholesale price
func (c *Client) CurrentUnitPrice(id int) (float64, error) {
	var out struct {
		Price float64 `json:"price"`
	}
	if err := c.request("price/unit", idBody{ID: id}, &out); err != nil {
		return 0, err
	}
	return out.Price, nil
}

// CurrentBoxPrice resolves the current per-box wholesale price
func (c *Client) CurrentBoxPrice(id int) (float64, error) {
	var out struct {
		Price float64 `json:"price"`
	}
	if err := c.request("price/box", idBody{ID: id}, &out); err != nil {
		return 0, err
	}
	return out.Price, nil
}

// AddUnit adds one unit of the product to the restock cart
func (c *Client) AddUnit(id int, unitPrice float64) {
	if err := c.request("cart/add", addUnitBody{ID: id, UnitPrice: unitPrice}, nil); err != nil {
		c.log.Errorf("cart/add failed for id %d: %v", id, err)
	}
}

// CartTotal reads the live cart total
func (c *Client) CartTotal() float64 {
	var out struct {
		Total float64 `json:"total"`
	}
	if err := c.request("cart/total", nil, &out); err != nil {
		c.log.Errorf("cart/total failed: %v", err)
		return 0
	}
	return out.Total
}

// ShippingCost reads the current shipping cost of the cart
func (c *Client) ShippingCost() float64 {
	var out struct {
		Cost float64 `json:"cost"`
	}
	if err := c.request("cart/shipping", nil, &out); err != nil {
		c.log.Errorf("cart/shipping failed: %v", err)
		return 0
	}
	return out.Cost
}

// ItemCountInCart reads the live cart item count
func (c *Client) ItemCountInCart() int {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.request("cart/itemCount", nil, &out); err != nil {
		c.log.Errorf("cart/itemCount failed: %v", err)
		return 0
	}
	return out.Count
}

// IsCartFull reports whether the cart reached its item capacity
func (c *Client) IsCartFull(includePending bool) bool {
	var out struct {
		Full bool `json:"full"`
	}
	if err := c.request("cart/isFull", isFullBody{IncludePending: includePending}, &out); err != nil {
		c.log.Errorf("cart/isFull failed: %v", err)
		return false
	}
	return out.Full
}

// Purchase checks the current cart contents out
func (c *Client) Purchase() {
	if err := c.request("cart/purchase", nil, nil); err != nil {
		c.log.Errorf("cart/purchase failed: %v", err)
	}
}

// OrderingDisallowed reports the host's ordering embargo, e.g. past the
// daily cutoff
func (c *Client) OrderingDisallowed() bool {
	var out struct {
		Disallowed bool `json:"disallowed"`
	}
	if err := c.request("cart/orderingDisallowed", nil, &out); err != nil {
		c.log.Errorf("cart/orderingDisallowed failed: %v", err)
		return true
	}
	return out.Disallowed
}

// CurrentFunds reads the player's live currency balance
func (c *Client) CurrentFunds() float64 {
	var out struct {
		Funds float64 `json:"funds"`
	}
	if err := c.request("money/funds", nil, &out); err != nil {
		c.log.Errorf("money/funds failed: %v", err)
		return 0
	}
	return out.Funds
}

// Services bundles the client into the host service set
func (c *Client) Services() host.Services {
	return host.Services{
		Catalog:   c,
		Inventory: c,
		Display:   c,
		Price:     c,
		Cart:      c,
		Money:     c,
	}
}
