package domain

import "errors"

var (
	// ErrInvalidCategory is returned for an unknown product category
	ErrInvalidCategory = errors.New("unknown product category")

	// ErrInvalidPricingMode is returned for an unknown pricing mode
	ErrInvalidPricingMode = errors.New("unknown pricing mode")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned when the catalog feed cannot be fetched
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
