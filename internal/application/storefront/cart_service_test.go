package storefront

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tindahan/backend/internal/domain/catalog"
	"github.com/tindahan/backend/internal/domain/checkout"
	"github.com/tindahan/backend/internal/domain/shared"
	"github.com/tindahan/backend/internal/domain/site"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForWebsite(ctx context.Context, websiteID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, websiteID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForWebsite(ctx context.Context, websiteID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, websiteID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, websiteID, id uuid.UUID) error {
	args := m.Called(ctx, websiteID, id)
	return args.Error(0)
}

// memorySessionStore is a minimal in-memory checkout.SessionStore
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*checkout.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*checkout.Session)}
}

func (f *memorySessionStore) Get(_ context.Context, _ uuid.UUID, sessionID string) (*checkout.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[sessionID], nil
}

func (f *memorySessionStore) Save(_ context.Context, _ uuid.UUID, session *checkout.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID] = session
	return nil
}

func (f *memorySessionStore) Delete(_ context.Context, _ uuid.UUID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

func storefrontWebsite(t *testing.T) *site.Website {
	t.Helper()
	w, err := site.NewWebsite("aroma-bakery", "Aroma Bakery")
	require.NoError(t, err)
	w.ConfigureChannels(site.ChannelConfig{MessengerID: "12345"})
	return w
}

func storefrontProduct(websiteID uuid.UUID, name, price string) *catalog.Product {
	return &catalog.Product{
		BaseEntity: shared.NewBaseEntity(),
		WebsiteID:  websiteID,
		Name:       name,
		Price:      price,
	}
}

func TestCartService_AddItem(t *testing.T) {
	website := storefrontWebsite(t)
	product := storefrontProduct(website.ID, "Croissant", "₱150")

	repo := new(MockProductRepository)
	repo.On("FindByIDForWebsite", mock.Anything, website.ID, product.ID).Return(product, nil)

	store := newMemorySessionStore()
	svc := NewCartService(repo, store, zap.NewNop())

	view, err := svc.AddItem(context.Background(), website, "sess-1", product.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "₱300", view.Items[0].SubtotalFormatted)
	assert.Equal(t, "₱300", view.TotalFormatted)

	// Second add merges into the existing line
	view, err = svc.AddItem(context.Background(), website, "sess-1", product.ID, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)

	repo.AssertExpectations(t)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	website := storefrontWebsite(t)
	productID := uuid.New()

	repo := new(MockProductRepository)
	repo.On("FindByIDForWebsite", mock.Anything, website.ID, productID).Return(nil, shared.ErrNotFound)

	svc := NewCartService(repo, newMemorySessionStore(), zap.NewNop())

	_, err := svc.AddItem(context.Background(), website, "sess-1", productID, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	website := storefrontWebsite(t)
	product := storefrontProduct(website.ID, "Croissant", "₱150")

	repo := new(MockProductRepository)
	repo.On("FindByIDForWebsite", mock.Anything, website.ID, product.ID).Return(product, nil)

	store := newMemorySessionStore()
	svc := NewCartService(repo, store, zap.NewNop())

	_, err := svc.AddItem(context.Background(), website, "sess-1", product.ID, 2)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(context.Background(), website, "sess-1", product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.ItemCount)
}

func TestCartService_View_FirstVisit(t *testing.T) {
	website := storefrontWebsite(t)
	svc := NewCartService(new(MockProductRepository), newMemorySessionStore(), zap.NewNop())

	view, err := svc.View(context.Background(), website, "fresh")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, "₱0", view.TotalFormatted)
	assert.False(t, view.CanCheckout, "empty cart cannot check out")
}

func TestCartService_Empty_KeepsForm(t *testing.T) {
	website := storefrontWebsite(t)
	product := storefrontProduct(website.ID, "Croissant", "₱150")

	repo := new(MockProductRepository)
	repo.On("FindByIDForWebsite", mock.Anything, website.ID, product.ID).Return(product, nil)

	store := newMemorySessionStore()
	svc := NewCartService(repo, store, zap.NewNop())

	_, err := svc.AddItem(context.Background(), website, "sess-1", product.ID, 1)
	require.NoError(t, err)

	name := "Jane"
	location := "Downtown"
	_, err = svc.UpdateForm(context.Background(), website, "sess-1", FormUpdate{Name: &name, Location: &location})
	require.NoError(t, err)

	view, err := svc.Empty(context.Background(), website, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, "Jane", view.Form.Name, "emptying the cart keeps the typed form")
}

func TestCartService_UpdateForm_FieldByField(t *testing.T) {
	website := storefrontWebsite(t)
	store := newMemorySessionStore()
	svc := NewCartService(new(MockProductRepository), store, zap.NewNop())

	name := "Jane"
	view, err := svc.UpdateForm(context.Background(), website, "s", FormUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane", view.Form.Name)
	assert.Empty(t, view.Form.Location)

	location := "Downtown"
	view, err = svc.UpdateForm(context.Background(), website, "s", FormUpdate{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Jane", view.Form.Name, "untouched fields keep their value")
	assert.Equal(t, "Downtown", view.Form.Location)
}

func TestCartService_Products(t *testing.T) {
	website := storefrontWebsite(t)
	repo := new(MockProductRepository)
	repo.On("FindAllForWebsite", mock.Anything, website.ID).Return([]catalog.Product{
		*storefrontProduct(website.ID, "Croissant", "₱150"),
		*storefrontProduct(website.ID, "Ensaymada", "₱80"),
	}, nil)

	svc := NewCartService(repo, newMemorySessionStore(), zap.NewNop())

	products, err := svc.Products(context.Background(), website)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Croissant", products[0].Name)
	assert.Equal(t, "₱150", products[0].Price)
}
