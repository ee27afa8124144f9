package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/scoopscore/backend/internal/domain"
)

// SortMode selects the display ordering of a product list. Sorting happens
// on a copy at request time; the cached computed list itself never reorders.
type SortMode string

const (
	SortValue     SortMode = "value"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortPopular   SortMode = "popular"
)

// ParseSortMode validates a sort query parameter. Empty input defaults to
// the value sort.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(s)) {
	case "":
		return SortValue, nil
	case SortValue, SortPriceAsc, SortPriceDesc, SortPopular:
		return SortMode(strings.ToLower(s)), nil
	}
	return "", domain.ErrInvalidRequest
}

// RatedProduct is a grouped product annotated with its rating lookup. Rating
// is a pointer so unrated products serialize as null, never zero.
type RatedProduct struct {
	domain.GroupedProduct
	Key           string               `json:"key"`
	Rating        *float64             `json:"rating"`
	ValueCategory domain.ValueCategory `json:"value_category,omitempty"`
	Rank          int                  `json:"rank,omitempty"`
	Clicks        int64                `json:"clicks"`
}

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// CatalogService orchestrates the rating pipeline: fetch the raw catalog,
// deduplicate, benchmark, rank, group, then serve sorted views of the cached
// result. The pipeline stages themselves are pure; this service owns all the
// I/O around them.
type CatalogService struct {
	source   domain.CatalogSource
	cache    domain.CacheRepository
	clicks   domain.ClickStore
	cacheTTL time.Duration
	debug    bool
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	source domain.CatalogSource,
	cache domain.CacheRepository,
	clicks domain.ClickStore,
	config CatalogServiceConfig,
) *CatalogService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	return &CatalogService{
		source:   source,
		cache:    cache,
		clicks:   clicks,
		cacheTTL: cacheTTL,
		debug:    config.EnableDebugLogging,
	}
}

// GetProducts returns the rated, grouped product list for a category in the
// requested display order.
// Flow: check cache -> fetch catalog -> dedupe -> benchmark -> rank -> group -> cache
func (s *CatalogService) GetProducts(
	ctx context.Context,
	category domain.Category,
	mode domain.PricingMode,
	sortMode SortMode,
) ([]RatedProduct, error) {
	// Protein listings only carry one-time prices; the subscription toggle
	// exists for electrolytes alone.
	if category == domain.CategoryProtein {
		mode = domain.PricingOneTime
	}

	list, err := s.computedList(ctx, category, mode)
	if err != nil {
		return nil, err
	}

	// Sort a copy so the cached slice keeps its deterministic base order.
	view := make([]RatedProduct, len(list))
	copy(view, list)
	s.fillClicks(ctx, view)
	sortView(view, mode, sortMode)

	return view, nil
}

// RegisterClick records one product card click for the popularity sort and
// returns the new total.
func (s *CatalogService) RegisterClick(ctx context.Context, key string) (int64, error) {
	if strings.TrimSpace(key) == "" {
		return 0, domain.ErrInvalidRequest
	}
	return s.clicks.Increment(ctx, key)
}

// computedList returns the cached rating pipeline output for (category,
// mode), computing and caching it on a miss.
func (s *CatalogService) computedList(
	ctx context.Context,
	category domain.Category,
	mode domain.PricingMode,
) ([]RatedProduct, error) {
	cacheKey := fmt.Sprintf("products:%s:%s", category, mode)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if list, ok := cached.([]RatedProduct); ok {
			return list, nil
		}
	}

	raw, err := s.source.FetchCatalog(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	list := s.compute(raw, category, mode)

	if err := s.cache.Set(ctx, cacheKey, list, s.cacheTTL); err != nil && s.debug {
		log.Printf("[CATALOG] cache set failed for %s: %v", cacheKey, err)
	}

	return list, nil
}

// compute runs the full rating pipeline over one raw catalog snapshot.
func (s *CatalogService) compute(
	raw []domain.RawProduct,
	category domain.Category,
	mode domain.PricingMode,
) []RatedProduct {
	deduped := Deduplicate(raw)
	benchmarks := ComputeBenchmarks(deduped, category, mode)
	rankings := BuildRankings(deduped, benchmarks)
	groups := GroupVariants(deduped, category, rankings)

	if s.debug {
		log.Printf("[CATALOG] %s/%s: %d raw, %d deduped, %d ranked, %d groups",
			category, mode, len(raw), len(deduped), rankings.Total(), len(groups))
	}

	list := make([]RatedProduct, 0, len(groups))
	for _, g := range groups {
		rp := RatedProduct{
			GroupedProduct: g,
			Key:            g.Key(),
		}
		if entry, ok := rankings.Lookup(rp.Key); ok {
			rating, _ := rankings.Rating(rp.Key)
			rp.Rating = &rating
			rp.ValueCategory = domain.CategoryForRating(rating)
			rp.Rank = entry.Rank
		}
		list = append(list, rp)
	}

	return list
}

// fillClicks loads the current click counts into a view slice.
func (s *CatalogService) fillClicks(ctx context.Context, view []RatedProduct) {
	for i := range view {
		count, err := s.clicks.Count(ctx, view[i].Key)
		if err != nil {
			continue
		}
		view[i].Clicks = count
	}
}

// sortView orders a product view for display. Every ordering ends in an
// identity-key tie-break so responses are deterministic for a fixed input.
func sortView(view []RatedProduct, mode domain.PricingMode, sortMode SortMode) {
	switch sortMode {
	case SortPriceAsc:
		sort.Slice(view, func(i, j int) bool {
			a := parsePriceOrInfinity(view[i].PriceField(mode))
			b := parsePriceOrInfinity(view[j].PriceField(mode))
			if a != b {
				return a < b
			}
			return view[i].Key < view[j].Key
		})
	case SortPriceDesc:
		sort.Slice(view, func(i, j int) bool {
			a, aOK := parsePriceOrNull(view[i].PriceField(mode))
			b, bOK := parsePriceOrNull(view[j].PriceField(mode))
			if aOK != bOK {
				return aOK // unpriced products stay at the bottom either way
			}
			if a != b {
				return a > b
			}
			return view[i].Key < view[j].Key
		})
	case SortPopular:
		sort.Slice(view, func(i, j int) bool {
			if view[i].Clicks != view[j].Clicks {
				return view[i].Clicks > view[j].Clicks
			}
			return lessByRating(view[i], view[j])
		})
	default: // SortValue
		sort.Slice(view, func(i, j int) bool {
			return lessByRating(view[i], view[j])
		})
	}
}

// lessByRating orders rated products first, highest rating first.
func lessByRating(a, b RatedProduct) bool {
	aRated, bRated := a.Rating != nil, b.Rating != nil
	if aRated != bRated {
		return aRated
	}
	if aRated && *a.Rating != *b.Rating {
		return *a.Rating > *b.Rating
	}
	return a.Key < b.Key
}
