package storage

import (
	"context"
	"fmt"

	exportapp "github.com/sepur/finance/internal/application/export"
	infraconfig "github.com/sepur/finance/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the object storage selected by cfg.Driver. The S3 bucket is created when missing.
func New(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (exportapp.ObjectStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory object storage; uploaded documents are lost on restart")
		return NewMemoryObjectStorage(cfg.PublicBaseURL), nil
	case "", "s3":
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Object storage ready",
			zap.String("bucket", s.Bucket()),
			zap.String("endpoint", s.endpoint),
		)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
