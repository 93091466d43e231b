package models

import "github.com/shopspring/decimal"

const (
	MinLineQuantity = 1
	MaxLineQuantity = 99
)

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the in-memory selection of one session. It holds at most one line
// per product id and is not safe for concurrent use; the owning Session
// serialises access.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddLine appends product with quantity 1. It reports false and leaves the
// cart untouched when the product already has a line.
func (c *Cart) AddLine(product Product) bool {
	if c.indexOf(product.ID) >= 0 {
		return false
	}
	c.lines = append(c.lines, CartLine{Product: product, Quantity: MinLineQuantity})
	return true
}

// SetQuantity clamps qty into [MinLineQuantity, MaxLineQuantity] and returns
// the value actually stored.
func (c *Cart) SetQuantity(productID string, qty int) (int, error) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return 0, ErrCartLineNotFound
	}
	qty = ClampQuantity(qty)
	c.lines[idx].Quantity = qty
	return qty, nil
}

func (c *Cart) RemoveLine(productID string) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot copies id, name, price and quantity of every line so that later
// catalog edits cannot reach an order built from it.
func (c *Cart) Snapshot() []OrderLine {
	out := make([]OrderLine, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, OrderLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func ClampQuantity(qty int) int {
	if qty < MinLineQuantity {
		return MinLineQuantity
	}
	if qty > MaxLineQuantity {
		return MaxLineQuantity
	}
	return qty
}

// CartView is the JSON shape returned to clients.
type CartView struct {
	Lines []CartLine      `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func (c *Cart) View() CartView {
	return CartView{
		Lines: c.Lines(),
		Count: c.Len(),
		Total: c.Total(),
	}
}
