package domain

import "github.com/shopspring/decimal"

type Variant struct {
	ID            string           `json:"id" yaml:"id"`
	Weight        string           `json:"weight" yaml:"weight"`
	Price         decimal.Decimal  `json:"price" yaml:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty" yaml:"original_price,omitempty"`
}

// CatalogItem is one sellable sweet. Items are loaded once and never mutated.
type CatalogItem struct {
	ID            string           `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	Description   string           `json:"description" yaml:"description"`
	Price         decimal.Decimal  `json:"price" yaml:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty" yaml:"original_price,omitempty"`
	Weight        string           `json:"weight" yaml:"weight"`
	Category      string           `json:"category" yaml:"category"`
	Variants      []Variant        `json:"variants,omitempty" yaml:"variants,omitempty"`
	Ingredients   []string         `json:"ingredients" yaml:"ingredients"`
	Serves        string           `json:"serves,omitempty" yaml:"serves,omitempty"`
	IsFavorite    bool             `json:"is_favorite" yaml:"is_favorite"`
	ImageURL      string           `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Variant looks up a variant by id. The second return is false when the item
// has no such variant.
func (c *CatalogItem) Variant(id string) (Variant, bool) {
	for _, v := range c.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Resolve returns the id, weight and price the cart should use for the given
// variant selection. An empty or unknown variant id resolves to the base item.
func (c *CatalogItem) Resolve(variantID string) (id, weight string, price decimal.Decimal, resolvedVariant string) {
	if v, ok := c.Variant(variantID); ok {
		return v.ID, v.Weight, v.Price, v.ID
	}
	return c.ID, c.Weight, c.Price, ""
}
