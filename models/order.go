package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const PaymentCashOnDelivery = "Cash on Delivery"

type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	Mobile        string          `json:"mobile"`
	Address       string          `json:"address"`
	Email         string          `json:"email"`
	PaymentMethod string          `json:"payment_method"`
	Lines         []OrderLine     `json:"lines"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type CustomerInfo struct {
	Name          string
	Mobile        string
	Address       string
	PaymentMethod string
}

func (ci *CustomerInfo) Normalize() {
	ci.Name = strings.TrimSpace(ci.Name)
	ci.Mobile = strings.TrimSpace(ci.Mobile)
	ci.Address = strings.TrimSpace(ci.Address)
	ci.PaymentMethod = strings.TrimSpace(ci.PaymentMethod)
	if ci.PaymentMethod == "" {
		ci.PaymentMethod = PaymentCashOnDelivery
	}
}

func (ci CustomerInfo) Validate() error {
	switch {
	case ci.Name == "":
		return &ValidationError{Field: "customer_name", Message: "Name is required"}
	case ci.Mobile == "":
		return &ValidationError{Field: "mobile", Message: "Mobile number is required"}
	case ci.Address == "":
		return &ValidationError{Field: "address", Message: "Address is required"}
	case ci.PaymentMethod != PaymentCashOnDelivery:
		return &ValidationError{Field: "payment_method", Message: "Only Cash on Delivery is supported"}
	}
	return nil
}

// SameLines reports whether two snapshots list the same products, prices and
// quantities in the same order.
func SameLines(a, b []OrderLine) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ProductID != b[i].ProductID ||
			a[i].Name != b[i].Name ||
			a[i].Quantity != b[i].Quantity ||
			!a[i].Price.Equal(b[i].Price) {
			return false
		}
	}
	return true
}

// LinesTotal sums price x quantity over snapshot lines.
func LinesTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
