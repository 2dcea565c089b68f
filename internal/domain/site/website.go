package site

import (
	"regexp"
	"strings"

	"github.com/tindahan/backend/internal/domain/shared"
)

// WebsiteStatus represents the publication status of a website
type WebsiteStatus string

const (
	WebsiteStatusDraft     WebsiteStatus = "draft"
	WebsiteStatusPublished WebsiteStatus = "published"
	WebsiteStatusSuspended WebsiteStatus = "suspended"
)

// DefaultCurrencyGlyph is prefixed to formatted amounts when the tenant
// has not chosen one.
const DefaultCurrencyGlyph = "₱"

// ChannelConfig holds the order delivery channels owned by the tenant.
// MessengerID is the interactive channel (m.me deep links); checkout is
// disabled while it is empty. OrderWebhookURL is the optional best-effort
// background order log.
type ChannelConfig struct {
	MessengerID     string `json:"messenger_id"`
	OrderWebhookURL string `json:"order_webhook_url"`
}

// CanCheckout reports whether the interactive channel is configured
func (c ChannelConfig) CanCheckout() bool {
	return strings.TrimSpace(c.MessengerID) != ""
}

// HasOrderLog reports whether the background order log is configured
func (c ChannelConfig) HasOrderLog() bool {
	return strings.TrimSpace(c.OrderWebhookURL) != ""
}

// Website is the resolved tenant record for a storefront subdomain.
// The checkout core treats it as read-only.
type Website struct {
	shared.BaseEntity
	Subdomain     string
	Title         string
	Description   string
	CurrencyGlyph string
	Status        WebsiteStatus
	Channels      ChannelConfig
}

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// NewWebsite creates a website with required fields
func NewWebsite(subdomain, title string) (*Website, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if !subdomainPattern.MatchString(subdomain) {
		return nil, shared.NewDomainError("INVALID_SUBDOMAIN", "Subdomain must be a valid DNS label")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Website title cannot be empty")
	}
	return &Website{
		BaseEntity:    shared.NewBaseEntity(),
		Subdomain:     subdomain,
		Title:         title,
		CurrencyGlyph: DefaultCurrencyGlyph,
		Status:        WebsiteStatusDraft,
	}, nil
}

// Glyph returns the currency glyph, falling back to the default
func (w *Website) Glyph() string {
	if w.CurrencyGlyph == "" {
		return DefaultCurrencyGlyph
	}
	return w.CurrencyGlyph
}

// ConfigureChannels replaces the order delivery channel settings
func (w *Website) ConfigureChannels(channels ChannelConfig) {
	w.Channels = channels
	w.Touch()
}

// IsPublished reports whether the storefront is live
func (w *Website) IsPublished() bool {
	return w.Status == WebsiteStatusPublished
}

// Publish marks the website as live
func (w *Website) Publish() {
	w.Status = WebsiteStatusPublished
	w.Touch()
}

// Suspend takes the storefront offline
func (w *Website) Suspend() {
	w.Status = WebsiteStatusSuspended
	w.Touch()
}
