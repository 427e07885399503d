package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

var ErrItemNotFound = errors.New("catalog item not found")

type Reader interface {
	GetAllItems() []domain.CatalogItem
	GetItem(id string) (*domain.CatalogItem, error)
}

// Catalog is the read-only menu. It is safe for concurrent use because nothing
// mutates it after Load returns.
type Catalog struct {
	items []domain.CatalogItem
	byID  map[string]int
}

type menuDocument struct {
	Items []domain.CatalogItem `yaml:"items"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultMenu))
}

// Load parses a YAML menu document.
func Load(r io.Reader) (*Catalog, error) {
	var doc menuDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}

	c := &Catalog{
		items: doc.Items,
		byID:  make(map[string]int, len(doc.Items)),
	}
	for i, item := range doc.Items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog item id %q", item.ID)
		}
		c.byID[item.ID] = i
	}
	return c, nil
}

func validateItem(item domain.CatalogItem) error {
	if item.ID == "" {
		return errors.New("catalog item without id")
	}
	if item.Name == "" {
		return fmt.Errorf("catalog item %q has no name", item.ID)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("catalog item %q has a negative price", item.ID)
	}
	for _, v := range item.Variants {
		if v.ID == "" || v.Price.IsNegative() {
			return fmt.Errorf("catalog item %q has an invalid variant %q", item.ID, v.ID)
		}
	}
	return nil
}

func (c *Catalog) GetAllItems() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) GetItem(id string) (*domain.CatalogItem, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	item := c.items[i]
	return &item, nil
}
