package cart

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/dhavalpatel0212-spec/Mithai/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kheer() *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:     "1",
		Name:   "Kheer",
		Price:  decimal.RequireFromString("7.50"),
		Weight: "500g",
		Variants: []domain.Variant{
			{ID: "1-500g", Weight: "500g", Price: decimal.RequireFromString("7.50")},
			{ID: "1-1kg", Weight: "1kg", Price: decimal.RequireFromString("9.99")},
		},
	}
}

func matho() *domain.CatalogItem {
	return &domain.CatalogItem{ID: "2", Name: "Matho", Price: decimal.RequireFromString("9.99"), Weight: "500g"}
}

func plus() AddOptions {
	return AddOptions{Customization: domain.Customization{DryFruits: domain.DryFruitPlus}}
}

func TestAdd_SingleLineWithAddon(t *testing.T) {
	c := New()
	line := c.Add(kheer(), plus())

	assert.Equal(t, "1", line.ID)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "9.50", pricing.LineTotal(line).StringFixed(2))
	assert.Equal(t, "9.50", c.Total().StringFixed(2))
	assert.Equal(t, 1, c.ItemCount())
}

func TestAdd_SameItemTwiceMerges(t *testing.T) {
	c := New()
	c.Add(kheer(), plus())
	c.Add(kheer(), plus())

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "19.00", pricing.LineTotal(lines[0]).StringFixed(2))
	assert.Equal(t, "19.00", c.Total().StringFixed(2))
}

func TestAdd_ReAddKeepsExistingCustomization(t *testing.T) {
	c := New()
	c.Add(kheer(), plus())
	c.Add(kheer(), AddOptions{Quantity: 3, Customization: domain.Customization{DryFruits: domain.DryFruitExtra}})

	line, ok := c.Line("1")
	require.True(t, ok)
	assert.Equal(t, 4, line.Quantity)
	assert.Equal(t, domain.DryFruitPlus, line.DryFruits)
}

func TestAdd_VariantsAreSeparateLines(t *testing.T) {
	c := New()
	c.Add(kheer(), AddOptions{VariantID: "1-1kg"})
	c.Add(kheer(), AddOptions{})
	c.Add(kheer(), AddOptions{VariantID: "1-1kg", Quantity: 2})

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1-1kg", lines[0].ID)
	assert.Equal(t, "1kg", lines[0].Weight)
	assert.Equal(t, "1-1kg", lines[0].VariantID)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "1", lines[1].ID)
}

func TestAdd_NonPositiveQuantityBecomesOne(t *testing.T) {
	c := New()
	c.Add(matho(), AddOptions{Quantity: -4})
	assert.Equal(t, 1, c.ItemCount())
}

func TestAdd_QuantityCappedAtMax(t *testing.T) {
	c := New()
	c.Add(kheer(), AddOptions{Quantity: math.MaxInt})
	line := c.Add(kheer(), AddOptions{Quantity: 1})

	assert.Equal(t, MaxQuantity, line.Quantity)
	assert.Equal(t, MaxQuantity, c.ItemCount())
	assert.True(t, c.Total().IsPositive())

	assert.True(t, c.UpdateQuantity("1", math.MaxInt))
	assert.Equal(t, MaxQuantity, c.ItemCount())
}

func TestSubtract_KeepsWhatWasNotOrdered(t *testing.T) {
	c := New()
	c.Add(kheer(), AddOptions{Quantity: 2})
	ordered := []domain.OrderItem{{ID: "1", Quantity: 2}}

	c.Add(kheer(), AddOptions{Quantity: 1})
	c.Add(matho(), AddOptions{})
	c.Subtract(ordered)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "2", lines[1].ID)

	c.Subtract([]domain.OrderItem{{ID: "1", Quantity: 5}, {ID: "2", Quantity: 1}, {ID: "gone", Quantity: 1}})
	assert.True(t, c.IsEmpty())
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(matho(), AddOptions{})
	before := c.Lines()
	beforeTotal := c.Total()

	c.Add(kheer(), plus())
	c.Remove("1")

	assert.Equal(t, before, c.Lines())
	assert.True(t, beforeTotal.Equal(c.Total()))

	c.Remove("does-not-exist")
	assert.Len(t, c.Lines(), 1)
}

func TestUpdateQuantity_Clamps(t *testing.T) {
	c := New()
	c.Add(matho(), AddOptions{})

	assert.True(t, c.UpdateQuantity("2", 5))
	assert.Equal(t, 5, c.ItemCount())

	assert.True(t, c.UpdateQuantity("2", 0))
	assert.Equal(t, 1, c.ItemCount())
	assert.Len(t, c.Lines(), 1)

	assert.True(t, c.UpdateQuantity("2", -3))
	assert.Equal(t, 1, c.ItemCount())

	assert.False(t, c.UpdateQuantity("nope", 3))
}

func TestCustomize(t *testing.T) {
	c := New()
	c.Add(matho(), AddOptions{})

	ok := c.Customize("2", domain.Customization{DryFruits: domain.DryFruitExtra, SugarLevel: domain.SugarLess, Note: "no nuts on top"})
	require.True(t, ok)

	line, _ := c.Line("2")
	assert.Equal(t, domain.DryFruitExtra, line.DryFruits)
	assert.Equal(t, domain.SugarLess, line.SugarLevel)
	assert.Equal(t, "no nuts on top", line.Note)
	assert.Equal(t, "12.99", c.Total().StringFixed(2))

	assert.False(t, c.Customize("x", domain.Customization{}))
}

func TestClear_Idempotent(t *testing.T) {
	c := New()
	c.Add(kheer(), plus())
	c.Clear()
	first := c.Summary()
	c.Clear()
	second := c.Summary()

	assert.Equal(t, len(first.Lines), len(second.Lines))
	assert.Equal(t, first.ItemCount, second.ItemCount)
	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, "0.00", c.Total().StringFixed(2))
}

func TestSummary(t *testing.T) {
	c := New()
	c.Add(kheer(), plus())
	c.Add(kheer(), plus())
	c.Add(matho(), AddOptions{Quantity: 1})

	s := c.Summary()
	require.Len(t, s.Lines, 2)
	assert.Equal(t, 3, s.ItemCount)
	assert.Equal(t, "19.00", s.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "28.99", s.Subtotal.StringFixed(2))
	assert.True(t, s.Delivery.IsZero())
	assert.True(t, s.Total.Equal(s.Subtotal))
	assert.Equal(t, "GBP", s.Currency)
}

func TestRestore_DropsInvalidLines(t *testing.T) {
	c := New()
	c.Restore([]domain.CartLine{
		{ID: "1", Name: "Kheer", UnitPrice: decimal.RequireFromString("7.50"), Quantity: 2},
		{ID: "2", Name: "Matho", Quantity: 0},
		{ID: "", Quantity: 3},
		{ID: "1-1kg", Name: "Kheer", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 500},
	})

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, domain.DryFruitNone, lines[0].DryFruits)
	assert.Equal(t, MaxQuantity, lines[1].Quantity)
	assert.Equal(t, 2+MaxQuantity, c.ItemCount())
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 3, ParseQuantity("3"))
	assert.Equal(t, 12, ParseQuantity(" 12 "))
	assert.Equal(t, 1, ParseQuantity("0"))
	assert.Equal(t, 1, ParseQuantity("-2"))
	assert.Equal(t, 1, ParseQuantity("abc"))
	assert.Equal(t, 1, ParseQuantity(""))
	assert.Equal(t, 1, ParseQuantity("2.5"))
	assert.Equal(t, MaxQuantity, ParseQuantity("100"))
	assert.Equal(t, 1, ParseQuantity("9223372036854775808"))
}

// Random add/remove/update sequences never break the count and total invariants.
func TestInvariants_RandomOperations(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	items := []*domain.CatalogItem{kheer(), matho()}
	levels := []domain.DryFruitLevel{domain.DryFruitNone, domain.DryFruitMinimum, domain.DryFruitPlus, domain.DryFruitExtra}
	variants := []string{"", "1-500g", "1-1kg"}

	c := New()
	for i := 0; i < 2000; i++ {
		switch r.Intn(4) {
		case 0:
			c.Add(items[r.Intn(len(items))], AddOptions{
				VariantID:     variants[r.Intn(len(variants))],
				Quantity:      r.Intn(5) - 1,
				Customization: domain.Customization{DryFruits: levels[r.Intn(len(levels))]},
			})
		case 1:
			lines := c.Lines()
			if len(lines) > 0 {
				c.Remove(lines[r.Intn(len(lines))].ID)
			}
		case 2:
			lines := c.Lines()
			if len(lines) > 0 {
				c.UpdateQuantity(lines[r.Intn(len(lines))].ID, r.Intn(10)-3)
			}
		case 3:
			if r.Intn(20) == 0 {
				c.Clear()
			}
		}

		lines := c.Lines()
		count := 0
		want := decimal.Zero
		for _, l := range lines {
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.LessOrEqual(t, l.Quantity, MaxQuantity)
			count += l.Quantity
			unit := l.UnitPrice.Add(pricing.Surcharge(l.DryFruits))
			want = want.Add(unit.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		require.Equal(t, count, c.ItemCount())
		require.True(t, want.Equal(c.Total()))
	}
}

func TestConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(kheer(), AddOptions{})
		}()
	}
	wg.Wait()

	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, 50, c.ItemCount())
}
