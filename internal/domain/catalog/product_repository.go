package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	FindByIDForWebsite(ctx context.Context, websiteID, id uuid.UUID) (*Product, error)
	FindAllForWebsite(ctx context.Context, websiteID uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, websiteID, id uuid.UUID) error
}
