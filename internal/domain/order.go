package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a cart line frozen at checkout, with the addon surcharge folded
// into UnitPrice.
type OrderItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Weight     string          `json:"weight,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	DryFruits  DryFruitLevel   `json:"dry_fruits"`
	SugarLevel SugarLevel      `json:"sugar_level,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// Order is the transient snapshot built for the confirmation message. It is
// never stored.
type Order struct {
	ID            string          `json:"order_id"`
	CustomerEmail string          `json:"customer_email"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	PlacedAt      time.Time       `json:"placed_at"`
}
