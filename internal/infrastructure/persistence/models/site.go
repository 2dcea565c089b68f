package models

import (
	"github.com/tindahan/backend/internal/domain/site"
)

// WebsiteModel is the persistence model for site.Website
type WebsiteModel struct {
	BaseModel
	Subdomain       string `gorm:"type:varchar(63);not null;uniqueIndex"`
	Title           string `gorm:"type:varchar(255);not null"`
	Description     string `gorm:"type:text"`
	CurrencyGlyph   string `gorm:"type:varchar(8);not null;default:'₱'"`
	Status          string `gorm:"type:varchar(20);not null;default:'draft';index"`
	MessengerID     string `gorm:"type:varchar(255)"`
	OrderWebhookURL string `gorm:"type:text"`
}

// TableName specifies the table name
func (WebsiteModel) TableName() string {
	return "websites"
}

// ToDomain converts the model to a domain website
func (m *WebsiteModel) ToDomain() *site.Website {
	return &site.Website{
		BaseEntity:    m.BaseModel.ToDomain(),
		Subdomain:     m.Subdomain,
		Title:         m.Title,
		Description:   m.Description,
		CurrencyGlyph: m.CurrencyGlyph,
		Status:        site.WebsiteStatus(m.Status),
		Channels: site.ChannelConfig{
			MessengerID:     m.MessengerID,
			OrderWebhookURL: m.OrderWebhookURL,
		},
	}
}

// WebsiteModelFromDomain converts a domain website to its persistence model
func WebsiteModelFromDomain(w *site.Website) *WebsiteModel {
	m := &WebsiteModel{
		Subdomain:       w.Subdomain,
		Title:           w.Title,
		Description:     w.Description,
		CurrencyGlyph:   w.CurrencyGlyph,
		Status:          string(w.Status),
		MessengerID:     w.Channels.MessengerID,
		OrderWebhookURL: w.Channels.OrderWebhookURL,
	}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}
