package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tindahan/backend/internal/domain/shared"
	"github.com/tindahan/backend/internal/domain/site"
	"github.com/tindahan/backend/internal/infrastructure/persistence/models"
)

// GormWebsiteRepository implements site.WebsiteRepository using GORM
type GormWebsiteRepository struct {
	db *gorm.DB
}

// NewGormWebsiteRepository creates a new GormWebsiteRepository
func NewGormWebsiteRepository(db *gorm.DB) *GormWebsiteRepository {
	return &GormWebsiteRepository{db: db}
}

// FindByID finds a website by its ID
func (r *GormWebsiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*site.Website, error) {
	var model models.WebsiteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySubdomain finds a website by its storefront subdomain
func (r *GormWebsiteRepository) FindBySubdomain(ctx context.Context, subdomain string) (*site.Website, error) {
	var model models.WebsiteModel
	if err := r.db.WithContext(ctx).
		Where("subdomain = ?", strings.ToLower(strings.TrimSpace(subdomain))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a website
func (r *GormWebsiteRepository) Save(ctx context.Context, website *site.Website) error {
	model := models.WebsiteModelFromDomain(website)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}
