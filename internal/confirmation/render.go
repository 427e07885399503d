package confirmation

import (
	"fmt"
	"strings"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/dhavalpatel0212-spec/Mithai/internal/pricing"
	"github.com/shopspring/decimal"
)

const ShopName = "Traditional Royal Sweets"

type Message struct {
	OrderID string
	To      string
	Subject string
	Body    string
}

func Subject(orderID string) string {
	return fmt.Sprintf("Order Confirmation #%s - %s", orderID, ShopName)
}

// FormatItem renders one order line the way the confirmation email lists it.
func FormatItem(item domain.OrderItem) string {
	weight := item.Weight
	if weight == "" {
		weight = "Standard"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "• %s (%s) x%d", item.Name, weight, item.Quantity)
	if item.DryFruits != "" && item.DryFruits != domain.DryFruitNone {
		fmt.Fprintf(&b, " (%s dry fruits)", item.DryFruits)
	}
	if item.Note != "" {
		fmt.Fprintf(&b, " - Note: %s", item.Note)
	}
	lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	fmt.Fprintf(&b, " - %s", pricing.FormatGBP(lineTotal))
	return b.String()
}

// Render produces the confirmation email body.
func Render(o domain.Order) string {
	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, FormatItem(it))
	}
	total := pricing.FormatGBP(o.Total)

	var b strings.Builder
	b.WriteString("=== ORDER CONFIRMATION EMAIL ===\n")
	fmt.Fprintf(&b, "To: %s\n", o.CustomerEmail)
	fmt.Fprintf(&b, "Subject: %s\n\n", Subject(o.ID))
	b.WriteString("Dear Valued Customer,\n\n")
	fmt.Fprintf(&b, "Thank you for choosing %s! We're delighted to confirm your order.\n\n", ShopName)
	b.WriteString("🛒 ORDER DETAILS:\n")
	fmt.Fprintf(&b, "Order ID: #%s\n", o.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", o.PlacedAt.Format("02/01/2006"))
	b.WriteString("📦 ITEMS ORDERED:\n")
	b.WriteString(strings.Join(items, "\n"))
	b.WriteString("\n\n")
	b.WriteString("💰 PAYMENT SUMMARY:\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", total)
	b.WriteString("Delivery: FREE (UK-wide)\n")
	b.WriteString(strings.Repeat("─", 20) + "\n")
	fmt.Fprintf(&b, "TOTAL PAID: %s\n\n", total)
	b.WriteString("🚚 DELIVERY INFORMATION:\n")
	b.WriteString("• Free delivery across the UK\n")
	b.WriteString("• Estimated delivery: 1-2 business days\n")
	b.WriteString("• Your sweets will be freshly prepared\n")
	b.WriteString("• Tracking information will be sent separately\n\n")
	b.WriteString("📞 NEED HELP?\n")
	b.WriteString("If you have any questions about your order, please don't hesitate to contact us.\n\n")
	b.WriteString("Thank you for trusting us with your sweet cravings!\n\n")
	b.WriteString("With love and sweetness,\n")
	fmt.Fprintf(&b, "%s Team\n\n", ShopName)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "This email was sent to %s\n", o.CustomerEmail)
	fmt.Fprintf(&b, "Order placed on %s\n", o.PlacedAt.UTC().Format("2006-01-02T15:04:05.000Z"))
	return b.String()
}

func NewMessage(o domain.Order) Message {
	return Message{
		OrderID: o.ID,
		To:      o.CustomerEmail,
		Subject: Subject(o.ID),
		Body:    Render(o),
	}
}
