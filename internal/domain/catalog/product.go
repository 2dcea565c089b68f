package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tindahan/backend/internal/domain/shared"
)

// Product is a catalog entry published on a storefront. The checkout core
// consumes it as-is: Price stays the display string the site editor typed
// (it may carry currency symbols or be malformed) and is only interpreted
// at cart-total time.
type Product struct {
	shared.BaseEntity
	WebsiteID   uuid.UUID
	Name        string
	Description string
	Image       string
	Price       string
}

// NewProduct creates a catalog product for a website
func NewProduct(websiteID uuid.UUID, name, description, image, price string) (*Product, error) {
	if websiteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WEBSITE", "Website ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		WebsiteID:   websiteID,
		Name:        name,
		Description: description,
		Image:       image,
		Price:       price,
	}, nil
}

// Update replaces the editable fields
func (p *Product) Update(name, description, image, price string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.Image = image
	p.Price = price
	p.Touch()
	return nil
}
