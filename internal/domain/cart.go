package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxNoteLength bounds the free-text note a shopper can attach to a line.
const MaxNoteLength = 150

type DryFruitLevel string

const (
	DryFruitNone    DryFruitLevel = "none"
	DryFruitMinimum DryFruitLevel = "minimum"
	DryFruitPlus    DryFruitLevel = "plus"
	DryFruitExtra   DryFruitLevel = "extra"
)

func (l DryFruitLevel) Valid() bool {
	switch l {
	case DryFruitNone, DryFruitMinimum, DryFruitPlus, DryFruitExtra:
		return true
	}
	return false
}

// ParseDryFruitLevel accepts the level names case-insensitively; empty means none.
func ParseDryFruitLevel(s string) (DryFruitLevel, error) {
	if s == "" {
		return DryFruitNone, nil
	}
	l := DryFruitLevel(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return DryFruitNone, fmt.Errorf("unknown dry fruit level %q", s)
	}
	return l, nil
}

type SugarLevel string

const (
	SugarUnset  SugarLevel = ""
	SugarLess   SugarLevel = "less"
	SugarNormal SugarLevel = "normal"
	SugarExtra  SugarLevel = "extra"
)

func ParseSugarLevel(s string) (SugarLevel, error) {
	l := SugarLevel(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case SugarUnset, SugarLess, SugarNormal, SugarExtra:
		return l, nil
	}
	return SugarUnset, fmt.Errorf("unknown sugar level %q", s)
}

// Customization is the per-line choice a shopper makes on top of the item.
type Customization struct {
	DryFruits  DryFruitLevel `json:"dry_fruits"`
	SugarLevel SugarLevel    `json:"sugar_level,omitempty"`
	Note       string        `json:"note,omitempty"`
}

// Normalize defaults the dry fruit level and truncates the note to MaxNoteLength runes.
func (c Customization) Normalize() Customization {
	if !c.DryFruits.Valid() {
		c.DryFruits = DryFruitNone
	}
	c.Note = strings.TrimSpace(c.Note)
	if r := []rune(c.Note); len(r) > MaxNoteLength {
		c.Note = string(r[:MaxNoteLength])
	}
	return c
}

// CartLine is one catalog item (or variant) held in the cart.
type CartLine struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Weight    string          `json:"weight"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Customization
}
