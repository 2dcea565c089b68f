package site

import (
	"context"

	"github.com/google/uuid"
)

// WebsiteRepository defines the persistence interface for websites
type WebsiteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Website, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*Website, error)
	Save(ctx context.Context, website *Website) error
}
