package asset

import (
	"context"
	"fmt"

	"go-empledger/internal/config"
)

const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// NewStore builds the configured backend.
func NewStore(ctx context.Context, cfg config.AssetOptions) (Store, error) {
	opts := Options{MaxBytes: cfg.MaxBytes, MaxDimension: cfg.MaxDimension}
	switch cfg.Backend {
	case "", BackendLocal:
		return NewLocalStore(cfg.Dir, opts)
	case BackendGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSPrefix, cfg.GCSCredentialsJSON, opts)
	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Backend)
	}
}
