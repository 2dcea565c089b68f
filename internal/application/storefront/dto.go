package storefront

import (
	"github.com/tindahan/backend/internal/domain/checkout"
	"github.com/tindahan/backend/internal/domain/site"
)

// ProductView is a catalog entry as shown on the storefront
type ProductView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
}

// CartItemView is one cart line prepared for display
type CartItemView struct {
	ProductID         string  `json:"product_id"`
	Name              string  `json:"name"`
	Image             string  `json:"image"`
	Price             string  `json:"price"`
	Quantity          int     `json:"quantity"`
	Subtotal          float64 `json:"subtotal"`
	SubtotalFormatted string  `json:"subtotal_formatted"`
}

// CartView is the full cart state returned to the storefront UI
type CartView struct {
	SessionID      string                `json:"session_id"`
	Items          []CartItemView        `json:"items"`
	ItemCount      int                   `json:"item_count"`
	Total          float64               `json:"total"`
	TotalFormatted string                `json:"total_formatted"`
	Form           checkout.CheckoutForm `json:"form"`
	CanCheckout    bool                  `json:"can_checkout"`
}

// FormUpdate mutates the stored checkout form field by field; nil fields
// are left untouched
type FormUpdate struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Message  *string `json:"message"`
}

func newCartView(website *site.Website, sess *checkout.Session) *CartView {
	formatter := checkout.NewCurrencyFormatter(website.Glyph())
	cart := sess.EnsureCart()

	items := make([]CartItemView, 0, len(cart.Items))
	for _, line := range cart.Items {
		subtotal := line.Subtotal()
		items = append(items, CartItemView{
			ProductID:         line.Product.ID.String(),
			Name:              line.Product.Name,
			Image:             line.Product.Image,
			Price:             line.Product.Price,
			Quantity:          line.Quantity,
			Subtotal:          subtotalFloat(subtotal),
			SubtotalFormatted: formatter.Format(subtotal),
		})
	}

	total := cart.Total()
	return &CartView{
		SessionID:      sess.ID,
		Items:          items,
		ItemCount:      cart.ItemCount(),
		Total:          subtotalFloat(total),
		TotalFormatted: formatter.Format(total),
		Form:           sess.Form,
		CanCheckout:    website.Channels.CanCheckout() && !cart.IsEmpty() && sess.Form.HasContact(),
	}
}
