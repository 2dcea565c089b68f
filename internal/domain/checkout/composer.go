package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tindahan/backend/internal/domain/site"
)

// OrderItem is one line of a composed order
type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderDetails carries the buyer and line item summary of an order
type OrderDetails struct {
	CustomerName   string      `json:"customerName"`
	Location       string      `json:"location"`
	Items          []OrderItem `json:"items"`
	Total          float64     `json:"total"`
	TotalFormatted string      `json:"totalFormatted"`
	Note           string      `json:"note"`
}

// OrderPayload is the structured order sent to the background order log.
// Field names are part of the webhook wire contract.
type OrderPayload struct {
	TenantID    string       `json:"tenantId"`
	TenantTitle string       `json:"tenantTitle"`
	Order       OrderDetails `json:"order"`
}

const messageSeparator = "--------------------"

// Compose builds the canonical order summary from the cart, the checkout
// form and the resolved website. It returns both the structured payload
// for the background log and the human-readable message text for the
// interactive channel. The text layout is a fixed contract: the receiving
// operator reads it verbatim, it is never machine-parsed downstream.
// Composition is pure and performs no I/O.
func Compose(cart *Cart, form CheckoutForm, website *site.Website) (OrderPayload, string) {
	formatter := NewCurrencyFormatter(website.Glyph())

	items := make([]OrderItem, 0, len(cart.Items))
	total := decimal.Zero

	var b strings.Builder
	b.WriteString("New Order - " + website.Title + "\n")
	b.WriteString(messageSeparator + "\n")

	for _, line := range cart.Items {
		unitPrice := line.UnitPrice()
		subtotal := line.Subtotal()
		total = total.Add(subtotal)

		items = append(items, OrderItem{
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: toFloat(unitPrice),
			Subtotal:  toFloat(subtotal),
		})
		fmt.Fprintf(&b, "- %s x%d @ %s = %s\n",
			line.Product.Name, line.Quantity,
			formatter.Format(unitPrice), formatter.Format(subtotal))
	}

	totalFormatted := formatter.Format(total)
	b.WriteString(messageSeparator + "\n")
	b.WriteString("Total: " + totalFormatted + "\n")
	b.WriteString("\n")
	b.WriteString("Name: " + form.Name + "\n")
	b.WriteString("Location: " + form.Location + "\n")

	note := strings.TrimSpace(form.Message)
	if note == "" {
		note = "N/A"
	}
	b.WriteString("Note: " + note)

	payload := OrderPayload{
		TenantID:    website.ID.String(),
		TenantTitle: website.Title,
		Order: OrderDetails{
			CustomerName:   form.Name,
			Location:       form.Location,
			Items:          items,
			Total:          toFloat(total),
			TotalFormatted: totalFormatted,
			Note:           note,
		},
	}

	return payload, b.String()
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
