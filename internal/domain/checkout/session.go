package checkout

import (
	"context"

	"github.com/google/uuid"
)

// Session is the state one storefront visitor accumulates while browsing:
// the cart and the checkout form. It lives in the session store keyed by
// website and session id, and disappears on store expiry or successful
// dispatch. There is no durability contract beyond the store's TTL.
type Session struct {
	ID   string       `json:"id"`
	Cart *Cart        `json:"cart"`
	Form CheckoutForm `json:"form"`
}

// NewSession creates a session with an empty cart
func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Cart: NewCart(),
	}
}

// Clone returns an independent copy of the session. Stores that keep
// sessions in process hand out clones so concurrent requests for the
// same visitor never share cart state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	return &Session{
		ID:   s.ID,
		Cart: s.Cart.Clone(),
		Form: s.Form,
	}
}

// EnsureCart returns the session's cart, creating it if a decoded session
// arrived without one
func (s *Session) EnsureCart() *Cart {
	if s.Cart == nil {
		s.Cart = NewCart()
	}
	return s.Cart
}

// SessionStore persists session state between requests. A missing session
// is reported as (nil, nil), not an error; expiry is an implementation
// concern configured on the store.
type SessionStore interface {
	Get(ctx context.Context, websiteID uuid.UUID, sessionID string) (*Session, error)
	Save(ctx context.Context, websiteID uuid.UUID, session *Session) error
	Delete(ctx context.Context, websiteID uuid.UUID, sessionID string) error
}
