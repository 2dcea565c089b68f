package storefront

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tindahan/backend/internal/domain/catalog"
	"github.com/tindahan/backend/internal/domain/checkout"
	"github.com/tindahan/backend/internal/domain/site"
)

// CartService manages session carts for storefront visitors. It loads the
// session, applies a pure cart mutation and writes the session back; all
// business rules live on the cart itself.
type CartService struct {
	products catalog.ProductRepository
	sessions checkout.SessionStore
	logger   *zap.Logger
}

// NewCartService creates a CartService
func NewCartService(products catalog.ProductRepository, sessions checkout.SessionStore, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		products: products,
		sessions: sessions,
		logger:   logger,
	}
}

// Products lists the catalog entries published on the website
func (s *CartService) Products(ctx context.Context, website *site.Website) ([]ProductView, error) {
	products, err := s.products.FindAllForWebsite(ctx, website.ID)
	if err != nil {
		return nil, err
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: p.Description,
			Image:       p.Image,
			Price:       p.Price,
		})
	}
	return views, nil
}

// View returns the current cart state, creating an empty session view for
// first-time visitors without persisting anything
func (s *CartService) View(ctx context.Context, website *site.Website, sessionID string) (*CartView, error) {
	sess, err := s.sessions.Get(ctx, website.ID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = checkout.NewSession(sessionID)
	}
	return newCartView(website, sess), nil
}

// AddItem adds a product to the session cart, merging with an existing
// line for the same product
func (s *CartService) AddItem(ctx context.Context, website *site.Website, sessionID string, productID uuid.UUID, qty int) (*CartView, error) {
	product, err := s.products.FindByIDForWebsite(ctx, website.ID, productID)
	if err != nil {
		return nil, err
	}

	sess, err := s.loadOrCreate(ctx, website, sessionID)
	if err != nil {
		return nil, err
	}
	sess.EnsureCart().AddLine(*product, qty)

	if err := s.sessions.Save(ctx, website.ID, sess); err != nil {
		return nil, err
	}
	s.logger.Debug("cart line added",
		zap.String("session_id", sessionID),
		zap.String("product", product.Name),
		zap.Int("qty", qty),
	)
	return newCartView(website, sess), nil
}

// UpdateQuantity sets a line's quantity; zero removes the line
func (s *CartService) UpdateQuantity(ctx context.Context, website *site.Website, sessionID string, productID uuid.UUID, qty int) (*CartView, error) {
	sess, err := s.loadOrCreate(ctx, website, sessionID)
	if err != nil {
		return nil, err
	}
	sess.EnsureCart().SetQuantity(productID, qty)

	if err := s.sessions.Save(ctx, website.ID, sess); err != nil {
		return nil, err
	}
	return newCartView(website, sess), nil
}

// RemoveItem removes a line from the cart; no-op when absent
func (s *CartService) RemoveItem(ctx context.Context, website *site.Website, sessionID string, productID uuid.UUID) (*CartView, error) {
	return s.UpdateQuantity(ctx, website, sessionID, productID, 0)
}

// Empty clears the cart on an explicit "empty cart" action, keeping the
// form fields the buyer already typed
func (s *CartService) Empty(ctx context.Context, website *site.Website, sessionID string) (*CartView, error) {
	sess, err := s.loadOrCreate(ctx, website, sessionID)
	if err != nil {
		return nil, err
	}
	sess.EnsureCart().Clear()

	if err := s.sessions.Save(ctx, website.ID, sess); err != nil {
		return nil, err
	}
	return newCartView(website, sess), nil
}

// UpdateForm applies a field-level update to the stored checkout form
func (s *CartService) UpdateForm(ctx context.Context, website *site.Website, sessionID string, update FormUpdate) (*CartView, error) {
	sess, err := s.loadOrCreate(ctx, website, sessionID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		sess.Form.Name = *update.Name
	}
	if update.Location != nil {
		sess.Form.Location = *update.Location
	}
	if update.Message != nil {
		sess.Form.Message = *update.Message
	}

	if err := s.sessions.Save(ctx, website.ID, sess); err != nil {
		return nil, err
	}
	return newCartView(website, sess), nil
}

func (s *CartService) loadOrCreate(ctx context.Context, website *site.Website, sessionID string) (*checkout.Session, error) {
	sess, err := s.sessions.Get(ctx, website.ID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = checkout.NewSession(sessionID)
	}
	return sess, nil
}

func subtotalFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
