package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tindahan/backend/internal/domain/checkout"
	"github.com/tindahan/backend/internal/domain/shared"
	"github.com/tindahan/backend/internal/domain/site"
)

// DefaultDebounce keeps the processing state visible long enough that a
// human double-click cannot re-enter before the in-flight guard is
// observed. It is a UX measure, not a correctness requirement; the guard
// alone prevents duplicate dispatch.
const DefaultDebounce = 500 * time.Millisecond

// Service is the checkout dispatch orchestrator. It validates
// preconditions, sequences the two delivery channels and settles the
// session. One dispatch at a time per session; the background order log
// may fail silently without blocking the interactive channel.
type Service struct {
	sessions checkout.SessionStore
	guard    *checkout.DispatchGuard
	orderLog OrderLog
	runner   TaskRunner
	metrics  Metrics
	logger   *zap.Logger
	debounce time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithDebounce overrides the post-dispatch debounce delay
func WithDebounce(d time.Duration) Option {
	return func(s *Service) {
		s.debounce = d
	}
}

// WithMetrics attaches dispatch metrics
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a checkout Service
func NewService(sessions checkout.SessionStore, orderLog OrderLog, runner TaskRunner, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		guard:    checkout.NewDispatchGuard(),
		orderLog: orderLog,
		runner:   runner,
		metrics:  NopMetrics{},
		logger:   logger,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Phase reports the dispatch phase for a session
func (s *Service) Phase(sessionID string) checkout.DispatchPhase {
	return s.guard.Phase(sessionID)
}

// Checkout converts the session's cart and form into a dispatched order.
//
// Preconditions are checked under the guard and reject without side
// effects: the
// website must have an interactive channel, the cart must be non-empty
// and the buyer contact fields must be filled in. The guard is acquired
// before validation, so the attempt walks Validating, then Dispatching or
// Rejected, and a session with a dispatch already in flight is refused up
// front; per the form lifecycle contract the stored form is still cleared
// on that refusal, since the attempt has completed from the buyer's point
// of view.
//
// The dispatch sequence is a hard contract: compose, build the deep link,
// initiate the background order log without awaiting it, then hand the
// deep link back. The order log runs on a detached task whose failure is
// logged and discarded, never surfaced. After the debounce delay the
// session is cleared and the guard released; release is deferred so the
// guard cannot stay stuck on an unexpected panic.
func (s *Service) Checkout(ctx context.Context, website *site.Website, sessionID string, req CheckoutRequest) (*CheckoutResult, error) {
	if !s.guard.Begin(sessionID) {
		if sess, err := s.sessions.Get(ctx, website.ID, sessionID); err == nil && sess != nil {
			sess.Form.Reset()
			if err := s.sessions.Save(ctx, website.ID, sess); err != nil {
				s.logger.Warn("failed to reset form on refused checkout", zap.Error(err))
			}
		}
		return nil, s.reject(ctx, shared.ErrCheckoutInFlight)
	}
	defer s.guard.End(sessionID)

	if !website.Channels.CanCheckout() {
		s.guard.Advance(sessionID, checkout.PhaseRejected)
		return nil, s.reject(ctx, shared.ErrChannelNotConfigured)
	}

	sess, err := s.sessions.Get(ctx, website.ID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.EnsureCart().IsEmpty() {
		s.guard.Advance(sessionID, checkout.PhaseRejected)
		return nil, s.reject(ctx, shared.ErrEmptyCart)
	}

	form := sess.Form
	if req.Name != "" {
		form.Name = req.Name
	}
	if req.Location != "" {
		form.Location = req.Location
	}
	if req.Message != "" {
		form.Message = req.Message
	}
	if !form.HasContact() {
		s.guard.Advance(sessionID, checkout.PhaseRejected)
		return nil, s.reject(ctx, shared.ErrMissingContact)
	}

	s.guard.Advance(sessionID, checkout.PhaseDispatching)

	payload, messageText := checkout.Compose(sess.Cart, form, website)
	deepLink := checkout.DeepLink(website.Channels.MessengerID, messageText)

	if website.Channels.HasOrderLog() {
		endpoint := website.Channels.OrderWebhookURL
		logPayload := payload
		s.runner.Detach("order-log", func(taskCtx context.Context) error {
			if err := s.orderLog.Record(taskCtx, endpoint, logPayload); err != nil {
				s.metrics.OrderLogFailed(taskCtx)
				return err
			}
			return nil
		})
	}

	s.wait(ctx)

	s.guard.Advance(sessionID, checkout.PhaseSettling)
	sess.Cart.Clear()
	sess.Form.Reset()
	if err := s.sessions.Delete(ctx, website.ID, sessionID); err != nil {
		s.logger.Warn("failed to clear session after dispatch",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	s.metrics.DispatchSucceeded(ctx)
	s.logger.Info("order dispatched",
		zap.String("website", website.Subdomain),
		zap.String("session_id", sessionID),
		zap.Int("items", len(payload.Order.Items)),
		zap.String("total", payload.Order.TotalFormatted),
	)

	return &CheckoutResult{
		OrderReference: uuid.NewString(),
		DeepLink:       deepLink,
		MessageText:    messageText,
		Total:          payload.Order.Total,
		TotalFormatted: payload.Order.TotalFormatted,
	}, nil
}

// reject records a precondition failure. Rejections are no-ops by
// contract; only the metric and log line observe them.
func (s *Service) reject(ctx context.Context, domainErr *shared.DomainError) error {
	s.metrics.DispatchRejected(ctx, domainErr.Code)
	s.logger.Debug("checkout rejected", zap.String("reason", domainErr.Code))
	return domainErr
}

// wait applies the UX debounce, ending early if the caller goes away
func (s *Service) wait(ctx context.Context) {
	if s.debounce <= 0 {
		return
	}
	timer := time.NewTimer(s.debounce)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
