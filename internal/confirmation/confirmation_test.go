package confirmation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 14, 30, 5, 123_000_000, time.UTC)

func kheerLines() []domain.CartLine {
	return []domain.CartLine{{
		ID:            "1",
		ItemID:        "1",
		Name:          "Kheer",
		Weight:        "500g",
		UnitPrice:     decimal.RequireFromString("7.50"),
		Quantity:      2,
		Customization: domain.Customization{DryFruits: domain.DryFruitPlus},
	}}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "shopper@example.com", "first.last+tag@mail.example.co.uk"}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{"", "not-an-email", "a@b", "@b.com", "a@.com", "a b@c.com", "a@b.c om", "a@@b.com", "a@b.", " "}
	for _, e := range invalid {
		err := ValidateEmail(e)
		require.Error(t, err, e)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, e)
	}
}

func TestNewOrderID(t *testing.T) {
	id := NewOrderID(time.UnixMilli(1760625005123))
	assert.Equal(t, "TRS005123", id)

	id = NewOrderID(time.UnixMilli(1760625987654))
	assert.Equal(t, "TRS987654", id)
}

func TestBuildOrder(t *testing.T) {
	o := BuildOrder(kheerLines(), "shopper@example.com", fixedNow)

	assert.True(t, strings.HasPrefix(o.ID, "TRS"))
	assert.Len(t, o.ID, 9)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "9.50", o.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "19.00", o.Total.StringFixed(2))
	assert.Equal(t, "GBP", o.Currency)
	assert.Equal(t, fixedNow, o.PlacedAt)
}

func TestFormatItem(t *testing.T) {
	tests := []struct {
		name string
		item domain.OrderItem
		want string
	}{
		{
			name: "plain",
			item: domain.OrderItem{Name: "Matho", Weight: "1kg", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 1, DryFruits: domain.DryFruitNone},
			want: "• Matho (1kg) x1 - £9.99",
		},
		{
			name: "addon and note",
			item: domain.OrderItem{Name: "Kheer", Weight: "500g", UnitPrice: decimal.RequireFromString("9.50"), Quantity: 2, DryFruits: domain.DryFruitPlus, Note: "less sweet please"},
			want: "• Kheer (500g) x2 (plus dry fruits) - Note: less sweet please - £19.00",
		},
		{
			name: "no weight",
			item: domain.OrderItem{Name: "Barfi", UnitPrice: decimal.RequireFromString("3"), Quantity: 3},
			want: "• Barfi (Standard) x3 - £9.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatItem(tt.item))
		})
	}
}

const goldenBody = `=== ORDER CONFIRMATION EMAIL ===
To: shopper@example.com
Subject: Order Confirmation #TRS005123 - Traditional Royal Sweets

Dear Valued Customer,

Thank you for choosing Traditional Royal Sweets! We're delighted to confirm your order.

🛒 ORDER DETAILS:
Order ID: #TRS005123
Date: 16/10/2026

📦 ITEMS ORDERED:
• Kheer (500g) x2 (plus dry fruits) - £19.00

💰 PAYMENT SUMMARY:
Subtotal: £19.00
Delivery: FREE (UK-wide)
────────────────────
TOTAL PAID: £19.00

🚚 DELIVERY INFORMATION:
• Free delivery across the UK
• Estimated delivery: 1-2 business days
• Your sweets will be freshly prepared
• Tracking information will be sent separately

📞 NEED HELP?
If you have any questions about your order, please don't hesitate to contact us.

Thank you for trusting us with your sweet cravings!

With love and sweetness,
Traditional Royal Sweets Team

---
This email was sent to shopper@example.com
Order placed on 2026-10-16T14:30:05.123Z
`

func TestRender_Golden(t *testing.T) {
	o := BuildOrder(kheerLines(), "shopper@example.com", fixedNow)
	o.ID = "TRS005123"

	assert.Equal(t, goldenBody, Render(o))
}

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func TestService_Prepare(t *testing.T) {
	svc := NewService(&recordingSender{}, WithClock(func() time.Time { return fixedNow }))

	_, _, err := svc.Prepare(kheerLines(), "not-an-email")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	order, msg, err := svc.Prepare(kheerLines(), "shopper@example.com")
	require.NoError(t, err)
	assert.Equal(t, order.ID, msg.OrderID)
	assert.Equal(t, "shopper@example.com", msg.To)
	assert.Contains(t, msg.Body, "#"+order.ID)
	assert.Contains(t, msg.Body, "£19.00")
	assert.Equal(t, Subject(order.ID), msg.Subject)
}

func TestService_Deliver(t *testing.T) {
	ok := &recordingSender{}
	svc := NewService(ok)
	require.NoError(t, svc.Deliver(context.Background(), Message{OrderID: "TRS1"}))
	assert.Len(t, ok.sent, 1)

	boom := errors.New("smtp down")
	svc = NewService(&recordingSender{err: boom})
	err := svc.Deliver(context.Background(), Message{OrderID: "TRS2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var df *DeliveryFailure
	require.True(t, errors.As(err, &df))
	assert.Equal(t, "TRS2", df.OrderID)
	assert.True(t, df.Retryable())
}
