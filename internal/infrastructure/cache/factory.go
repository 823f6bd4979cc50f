package cache

import (
	"fmt"
	"io"

	exportapp "github.com/sepur/finance/internal/application/export"
	"github.com/sepur/finance/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DocumentCacheFactory creates document caches based on configuration
type DocumentCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DocumentCacheFactoryOption is a functional option for configuring the factory
type DocumentCacheFactoryOption func(*DocumentCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DocumentCacheFactoryOption {
	return func(f *DocumentCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to memory when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) DocumentCacheFactoryOption {
	return func(f *DocumentCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDocumentCacheFactory creates a new factory
func NewDocumentCacheFactory(cfg config.RedisConfig, opts ...DocumentCacheFactoryOption) *DocumentCacheFactory {
	f := &DocumentCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// DocumentCache is a cache that owns resources released by Close
type DocumentCache interface {
	exportapp.DocumentCache
	io.Closer
}

// CreateStore returns a Redis cache when Redis is enabled and reachable,
// otherwise an in-memory cache if fallback is allowed.
func (f *DocumentCacheFactory) CreateStore() (DocumentCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory document cache")
		return NewInMemoryDocumentCache(0), nil
	}

	store, err := NewRedisDocumentCache(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("Using Redis document cache", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for document cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory document cache. "+
		"Upload retries on another instance will regenerate the document.",
		zap.Error(err),
	)
	return NewInMemoryDocumentCache(0), nil
}
