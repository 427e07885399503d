// Package cart holds a shopper's cart. A Cart is owned by one session and all
// mutation goes through its methods.
package cart

import (
	"strconv"
	"strings"
	"sync"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/dhavalpatel0212-spec/Mithai/internal/pricing"
	"github.com/shopspring/decimal"
)

// MaxQuantity bounds a single line, matching the storefront quantity input.
const MaxQuantity = 99

// AddOptions describes what the shopper picked when adding an item.
type AddOptions struct {
	VariantID string
	Quantity  int
	domain.Customization
}

type LineSummary struct {
	domain.CartLine
	LineTotal decimal.Decimal `json:"line_total"`
}

type Summary struct {
	Lines     []LineSummary   `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Delivery  decimal.Decimal `json:"delivery"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

type Cart struct {
	mu    sync.RWMutex
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// Add puts one more of item into the cart. Re-adding the same resolved item
// bumps the existing line and keeps its customization.
func (c *Cart) Add(item *domain.CatalogItem, opts AddOptions) domain.CartLine {
	qty := clampQuantity(opts.Quantity)
	id, weight, price, variantID := item.Resolve(opts.VariantID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		c.lines[i].Quantity = clampQuantity(c.lines[i].Quantity + qty)
		return c.lines[i]
	}

	line := domain.CartLine{
		ID:            id,
		ItemID:        item.ID,
		VariantID:     variantID,
		Name:          item.Name,
		Weight:        weight,
		UnitPrice:     price,
		Quantity:      qty,
		Customization: opts.Customization.Normalize(),
	}
	c.lines = append(c.lines, line)
	return line
}

// Remove deletes a line; unknown ids are ignored.
func (c *Cart) Remove(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(lineID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// UpdateQuantity sets a line's quantity within [1, MaxQuantity]. Removing a
// line takes an explicit Remove. Reports whether the line exists.
func (c *Cart) UpdateQuantity(lineID string, qty int) bool {
	qty = clampQuantity(qty)
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(lineID)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity = qty
	return true
}

// Customize replaces the addon, sugar and note choices of a line.
func (c *Cart) Customize(lineID string, cz domain.Customization) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(lineID)
	if i < 0 {
		return false
	}
	c.lines[i].Customization = cz.Normalize()
	return true
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Subtract takes ordered quantities out of the cart. A line drops once nothing
// of it is left; anything added after the order was taken stays.
func (c *Cart) Subtract(items []domain.OrderItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range items {
		i := c.indexOf(it.ID)
		if i < 0 {
			continue
		}
		if c.lines[i].Quantity <= it.Quantity {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			continue
		}
		c.lines[i].Quantity -= it.Quantity
	}
}

// Restore replaces the cart contents with a snapshot, skipping lines that would
// break the quantity invariant.
func (c *Cart) Restore(lines []domain.CartLine) {
	kept := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 || l.ID == "" {
			continue
		}
		l.Quantity = clampQuantity(l.Quantity)
		l.Customization = l.Customization.Normalize()
		kept = append(kept, l)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = kept
}

func (c *Cart) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(lineID string) (domain.CartLine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(lineID); i >= 0 {
		return c.lines[i], true
	}
	return domain.CartLine{}, false
}

func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return pricing.CartTotal(c.lines)
}

func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}

func (c *Cart) Summary() Summary {
	lines := c.Lines()

	s := Summary{
		Lines:    make([]LineSummary, 0, len(lines)),
		Delivery: pricing.DeliveryFee(),
		Currency: pricing.Currency,
	}
	for _, l := range lines {
		s.Lines = append(s.Lines, LineSummary{CartLine: l, LineTotal: pricing.LineTotal(l)})
		s.ItemCount += l.Quantity
	}
	s.Subtotal = pricing.CartTotal(lines)
	s.Total = s.Subtotal.Add(s.Delivery)
	return s
}

// caller must hold mu
func (c *Cart) indexOf(lineID string) int {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

// ParseQuantity reads a quantity typed by the shopper. Anything that is not a
// positive integer becomes 1; larger values are capped at MaxQuantity.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return clampQuantity(n)
}

func clampQuantity(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxQuantity:
		return MaxQuantity
	}
	return n
}
