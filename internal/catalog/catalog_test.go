package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsMenu(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	items := c.GetAllItems()
	require.Len(t, items, 2)
	assert.Equal(t, "Kheer", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("7.50")))
	assert.True(t, items[0].IsFavorite)
	require.Len(t, items[0].Variants, 3)
	require.NotNil(t, items[0].Variants[1].OriginalPrice)
	assert.True(t, items[0].Variants[1].OriginalPrice.Equal(decimal.RequireFromString("12.99")))
	assert.Nil(t, items[0].Variants[0].OriginalPrice)
}

func TestGetItem(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	item, err := c.GetItem("2")
	require.NoError(t, err)
	assert.Equal(t, "Matho", item.Name)

	_, err = c.GetItem("99")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGetAllItems_ReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	items := c.GetAllItems()
	items[0].Name = "changed"

	again := c.GetAllItems()
	assert.Equal(t, "Kheer", again[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"duplicate", "items:\n  - {id: \"1\", name: A, price: \"1\"}\n  - {id: \"1\", name: B, price: \"2\"}\n", "duplicate"},
		{"missing id", "items:\n  - {name: A, price: \"1\"}\n", "without id"},
		{"negative price", "items:\n  - {id: \"1\", name: A, price: \"-1\"}\n", "negative price"},
		{"unknown field", "items:\n  - {id: \"1\", name: A, price: \"1\", colour: red}\n", "decode menu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
