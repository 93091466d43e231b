package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPrice is the smallest price the NUMERIC(12,2) price column cannot hold.
var MaxPrice = decimal.New(1, 10)

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	ImagePublicID string          `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Validate checks the fields an admin must supply before the product reaches the store.
func (p *Product) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "Product name is required"}
	}
	if !p.Price.IsPositive() {
		return &ValidationError{Field: "price", Message: "Price must be greater than 0"}
	}
	if !p.Price.Equal(p.Price.Truncate(2)) {
		return &ValidationError{Field: "price", Message: "Price can have at most 2 decimal places"}
	}
	if p.Price.GreaterThanOrEqual(MaxPrice) {
		return &ValidationError{Field: "price", Message: "Price must be less than " + MaxPrice.String()}
	}
	return nil
}
