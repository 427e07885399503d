// Package pricing turns cart lines into money. All arithmetic is exact; the
// only rounding happens in FormatGBP.
package pricing

import (
	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/shopspring/decimal"
)

const Currency = "GBP"

var surcharges = map[domain.DryFruitLevel]decimal.Decimal{
	domain.DryFruitNone:    decimal.Zero,
	domain.DryFruitMinimum: decimal.NewFromInt(1),
	domain.DryFruitPlus:    decimal.NewFromInt(2),
	domain.DryFruitExtra:   decimal.NewFromInt(3),
}

// Surcharge is the per-unit price of a dry fruit tier. Unknown tiers cost nothing.
func Surcharge(level domain.DryFruitLevel) decimal.Decimal {
	if s, ok := surcharges[level]; ok {
		return s
	}
	return decimal.Zero
}

// UnitPrice picks the variant price when one is selected, else the base price.
func UnitPrice(item *domain.CatalogItem, variantID string) decimal.Decimal {
	_, _, price, _ := item.Resolve(variantID)
	return price
}

// EffectiveUnitPrice is the unit price with the dry fruit surcharge applied.
func EffectiveUnitPrice(line domain.CartLine) decimal.Decimal {
	return line.UnitPrice.Add(Surcharge(line.DryFruits))
}

// LineTotal is (unit price + surcharge) x quantity.
func LineTotal(line domain.CartLine) decimal.Decimal {
	return EffectiveUnitPrice(line).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

func CartTotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total
}

// DeliveryFee is always zero: delivery is free UK-wide.
func DeliveryFee() decimal.Decimal {
	return decimal.Zero
}

func FormatGBP(amount decimal.Decimal) string {
	return "£" + amount.StringFixed(2)
}
