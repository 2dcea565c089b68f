package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tindahan/backend/internal/domain/checkout"
	"github.com/tindahan/backend/internal/infrastructure/config"
)

// SessionStoreFactory creates session stores based on configuration
type SessionStoreFactory struct {
	sessionConfig config.SessionConfig
	redisConfig   config.RedisConfig
	logger        *zap.Logger
}

// SessionStoreFactoryOption is a functional option for configuring the factory
type SessionStoreFactoryOption func(*SessionStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.logger = logger
	}
}

// NewSessionStoreFactory creates a new factory
func NewSessionStoreFactory(sessionCfg config.SessionConfig, redisCfg config.RedisConfig, opts ...SessionStoreFactoryOption) *SessionStoreFactory {
	f := &SessionStoreFactory{
		sessionConfig: sessionCfg,
		redisConfig:   redisCfg,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates a session store matching the configured backend
func (f *SessionStoreFactory) CreateStore() (checkout.SessionStore, error) {
	switch f.sessionConfig.Store {
	case "redis":
		store, err := NewRedisSessionStore(f.redisConfig, f.sessionConfig.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}
		f.logger.Info("using Redis session store",
			zap.Duration("ttl", f.sessionConfig.TTL))
		return store, nil
	case "memory":
		f.logger.Info("using in-memory session store",
			zap.Duration("ttl", f.sessionConfig.TTL))
		return NewInMemorySessionStore(f.sessionConfig.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session store backend %q", f.sessionConfig.Store)
	}
}
