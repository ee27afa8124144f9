package domain

import (
	"context"
	"time"
)

// CatalogSource supplies the scraped raw product records for a category.
// The rating engine itself never fetches anything; it consumes the slice.
type CatalogSource interface {
	FetchCatalog(ctx context.Context, category Category) ([]RawProduct, error)
}

// CacheRepository defines the interface for caching computed product lists
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ClickStore counts product card clicks for the popularity sort. Injected
// rather than ambient so the counter can move to persistent storage without
// touching the callers.
type ClickStore interface {
	// Increment adds one click for key and returns the new total.
	Increment(ctx context.Context, key string) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
}
