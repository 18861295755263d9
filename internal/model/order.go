package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is built at the payment -> confirmation transition and never persisted.
type Order struct {
	Number        string
	CreatedAt     time.Time
	CustomerEmail string
	CustomerName  string
	Items         []CartItem
	Total         decimal.Decimal
}

// Total sums item prices as given, without rounding, tax or discounts.
func Total(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// FormatUSD renders an amount the way it is shown to customers, e.g. $50 or $299.99.
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.String()
}
