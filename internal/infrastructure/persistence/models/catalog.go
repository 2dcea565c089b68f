package models

import (
	"github.com/google/uuid"

	"github.com/tindahan/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for catalog.Product.
// Price is stored verbatim as the display string the site editor typed.
type ProductModel struct {
	BaseModel
	WebsiteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:text"`
	Price       string    `gorm:"type:varchar(64);not null;default:''"`
}

// TableName specifies the table name
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		WebsiteID:   m.WebsiteID,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Price:       m.Price,
	}
}

// ProductModelFromDomain converts a domain product to its persistence model
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		WebsiteID:   p.WebsiteID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
