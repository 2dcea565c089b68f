package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tindahan/backend/internal/domain/catalog"
	"github.com/tindahan/backend/internal/domain/checkout"
	"github.com/tindahan/backend/internal/domain/shared"
	"github.com/tindahan/backend/internal/domain/site"
)

// fakeSessionStore is a concurrency-safe in-memory store for tests
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*checkout.Session
	saves    int
	deletes  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*checkout.Session)}
}

func (f *fakeSessionStore) Get(_ context.Context, _ uuid.UUID, sessionID string) (*checkout.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[sessionID], nil
}

func (f *fakeSessionStore) Save(_ context.Context, _ uuid.UUID, session *checkout.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, _ uuid.UUID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.sessions, sessionID)
	return nil
}

// countingOrderLog counts deliveries and can be told to fail
type countingOrderLog struct {
	mu      sync.Mutex
	records int
	err     error
}

func (c *countingOrderLog) Record(_ context.Context, _ string, _ checkout.OrderPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records++
	return c.err
}

func (c *countingOrderLog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records
}

// inlineRunner executes detached tasks synchronously so tests can observe
// their effects without races
type inlineRunner struct{}

func (inlineRunner) Detach(_ string, fn func(ctx context.Context) error) {
	_ = fn(context.Background())
}

// countingMetrics records outcomes per kind
type countingMetrics struct {
	mu        sync.Mutex
	succeeded int
	rejected  map[string]int
	logFailed int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{rejected: make(map[string]int)}
}

func (m *countingMetrics) DispatchSucceeded(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.succeeded++
}

func (m *countingMetrics) DispatchRejected(_ context.Context, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *countingMetrics) OrderLogFailed(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logFailed++
}

func testWebsite(t *testing.T, channels site.ChannelConfig) *site.Website {
	t.Helper()
	w, err := site.NewWebsite("aroma-bakery", "Aroma Bakery")
	require.NoError(t, err)
	w.ConfigureChannels(channels)
	return w
}

func testProduct(name, price string) catalog.Product {
	return catalog.Product{
		BaseEntity: shared.NewBaseEntity(),
		WebsiteID:  uuid.New(),
		Name:       name,
		Price:      price,
	}
}

func seedSession(store *fakeSessionStore, sessionID string, lines ...checkout.CartLine) *checkout.Session {
	sess := checkout.NewSession(sessionID)
	for _, line := range lines {
		sess.Cart.AddLine(line.Product, line.Quantity)
	}
	store.sessions[sessionID] = sess
	return sess
}

func TestCheckout_EndToEnd(t *testing.T) {
	store := newFakeSessionStore()
	orderLog := &countingOrderLog{}
	metrics := newCountingMetrics()
	svc := NewService(store, orderLog, inlineRunner{}, zap.NewNop(),
		WithDebounce(0), WithMetrics(metrics))

	website := testWebsite(t, site.ChannelConfig{
		MessengerID:     "12345",
		OrderWebhookURL: "https://hooks.example.com/orders",
	})
	seedSession(store, "sess-1", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 2})

	result, err := svc.Checkout(context.Background(), website, "sess-1", CheckoutRequest{
		Name:     "Jane",
		Location: "Downtown",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.DeepLink, "https://m.me/12345?text="))
	assert.Contains(t, result.MessageText, "- Croissant x2 @ ₱150 = ₱300")
	assert.Equal(t, "₱300", result.TotalFormatted)
	assert.NotEmpty(t, result.OrderReference)

	assert.Equal(t, 1, orderLog.count(), "order log must receive exactly one delivery")
	assert.Nil(t, store.sessions["sess-1"], "session is cleared after settlement")
	assert.Equal(t, 1, metrics.succeeded)
	assert.Equal(t, checkout.PhaseIdle, svc.Phase("sess-1"))
}

func TestCheckout_PreconditionRejections(t *testing.T) {
	t.Run("missing interactive channel", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := NewService(store, &countingOrderLog{}, inlineRunner{}, zap.NewNop(), WithDebounce(0))
		website := testWebsite(t, site.ChannelConfig{})
		seedSession(store, "s", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 1})

		_, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
		assert.ErrorIs(t, err, shared.ErrChannelNotConfigured)
		assert.NotNil(t, store.sessions["s"], "rejection must not mutate the session")
		assert.Equal(t, 0, store.saves+store.deletes)
	})

	t.Run("empty cart", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := NewService(store, &countingOrderLog{}, inlineRunner{}, zap.NewNop(), WithDebounce(0))
		website := testWebsite(t, site.ChannelConfig{MessengerID: "12345"})

		_, err := svc.Checkout(context.Background(), website, "missing", CheckoutRequest{Name: "Jane", Location: "Downtown"})
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})

	t.Run("missing contact fields", func(t *testing.T) {
		store := newFakeSessionStore()
		orderLog := &countingOrderLog{}
		svc := NewService(store, orderLog, inlineRunner{}, zap.NewNop(), WithDebounce(0))
		website := testWebsite(t, site.ChannelConfig{MessengerID: "12345"})
		seedSession(store, "s", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 1})

		_, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane"})
		assert.ErrorIs(t, err, shared.ErrMissingContact)
		assert.Equal(t, 0, orderLog.count())
		require.NotNil(t, store.sessions["s"])
		assert.False(t, store.sessions["s"].Cart.IsEmpty())
	})
}

func TestCheckout_FormFallsBackToSessionValues(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewService(store, &countingOrderLog{}, inlineRunner{}, zap.NewNop(), WithDebounce(0))
	website := testWebsite(t, site.ChannelConfig{MessengerID: "12345"})

	sess := seedSession(store, "s", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 1})
	sess.Form = checkout.CheckoutForm{Name: "Jane", Location: "Downtown"}

	result, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{})
	require.NoError(t, err)
	assert.Contains(t, result.MessageText, "Name: Jane")
	assert.Contains(t, result.MessageText, "Location: Downtown")
}

func TestCheckout_OrderLogFailureIsSwallowed(t *testing.T) {
	store := newFakeSessionStore()
	orderLog := &countingOrderLog{err: errors.New("webhook down")}
	metrics := newCountingMetrics()
	svc := NewService(store, orderLog, inlineRunner{}, zap.NewNop(),
		WithDebounce(0), WithMetrics(metrics))
	website := testWebsite(t, site.ChannelConfig{
		MessengerID:     "12345",
		OrderWebhookURL: "https://hooks.example.com/orders",
	})
	seedSession(store, "s", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 1})

	result, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
	require.NoError(t, err, "background channel failure must never surface")
	assert.NotEmpty(t, result.DeepLink)
	assert.Equal(t, 1, metrics.logFailed)
	assert.Equal(t, 1, metrics.succeeded)
}

func TestCheckout_NoOrderLogConfigured(t *testing.T) {
	store := newFakeSessionStore()
	orderLog := &countingOrderLog{}
	svc := NewService(store, orderLog, inlineRunner{}, zap.NewNop(), WithDebounce(0))
	website := testWebsite(t, site.ChannelConfig{MessengerID: "12345"})
	seedSession(store, "s", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 1})

	_, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
	require.NoError(t, err)
	assert.Equal(t, 0, orderLog.count())
}

func TestCheckout_DoubleSubmitDispatchesOnce(t *testing.T) {
	store := newFakeSessionStore()
	orderLog := &countingOrderLog{}
	metrics := newCountingMetrics()
	svc := NewService(store, orderLog, inlineRunner{}, zap.NewNop(),
		WithDebounce(150*time.Millisecond), WithMetrics(metrics))
	website := testWebsite(t, site.ChannelConfig{
		MessengerID:     "12345",
		OrderWebhookURL: "https://hooks.example.com/orders",
	})
	seedSession(store, "s",
		checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 2})

	type outcome struct {
		result *CheckoutResult
		err    error
	}
	first := make(chan outcome, 1)
	go func() {
		r, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
		first <- outcome{r, err}
	}()

	// Let the first submission acquire the guard and enter its debounce.
	time.Sleep(50 * time.Millisecond)

	_, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
	assert.ErrorIs(t, err, shared.ErrCheckoutInFlight)

	got := <-first
	require.NoError(t, got.err)
	assert.Equal(t, 1, orderLog.count(), "rapid double submit must produce exactly one order log delivery")
	assert.Equal(t, 1, metrics.succeeded, "only one deep link is handed out")
	assert.Equal(t, 1, metrics.rejected[shared.ErrCheckoutInFlight.Code])
}

func TestCheckout_DebounceEndsEarlyOnContextCancel(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewService(store, &countingOrderLog{}, inlineRunner{}, zap.NewNop(),
		WithDebounce(10*time.Second))
	website := testWebsite(t, site.ChannelConfig{MessengerID: "12345"})
	seedSession(store, "s", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := svc.Checkout(ctx, website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCheckout_RejectionReleasesGuard(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewService(store, &countingOrderLog{}, inlineRunner{}, zap.NewNop(), WithDebounce(0))
	website := testWebsite(t, site.ChannelConfig{MessengerID: "12345"})

	_, err := svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
	assert.Equal(t, checkout.PhaseIdle, svc.Phase("s"), "rejected attempt must release the guard")

	seedSession(store, "s", checkout.CartLine{Product: testProduct("Croissant", "₱150"), Quantity: 1})
	_, err = svc.Checkout(context.Background(), website, "s", CheckoutRequest{Name: "Jane", Location: "Downtown"})
	require.NoError(t, err, "a fresh attempt after a rejection must dispatch normally")
}
