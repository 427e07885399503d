package confirmation

import (
	"fmt"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/dhavalpatel0212-spec/Mithai/internal/pricing"
)

const orderIDPrefix = "TRS"

// NewOrderID is the prefix plus the last six digits of the millisecond clock.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("%s%06d", orderIDPrefix, now.UnixMilli()%1_000_000)
}

// BuildOrder freezes the cart lines into an order for the given customer.
func BuildOrder(lines []domain.CartLine, email string, now time.Time) domain.Order {
	o := domain.Order{
		ID:            NewOrderID(now),
		CustomerEmail: email,
		Items:         make([]domain.OrderItem, 0, len(lines)),
		Total:         pricing.CartTotal(lines).Add(pricing.DeliveryFee()),
		Currency:      pricing.Currency,
		PlacedAt:      now,
	}
	for _, l := range lines {
		o.Items = append(o.Items, domain.OrderItem{
			ID:         l.ID,
			Name:       l.Name,
			Weight:     l.Weight,
			UnitPrice:  pricing.EffectiveUnitPrice(l),
			Quantity:   l.Quantity,
			DryFruits:  l.DryFruits,
			SugarLevel: l.SugarLevel,
			Note:       l.Note,
		})
	}
	return o
}
