package usecase

import (
	"math"
	"sort"

	"github.com/scoopscore/backend/internal/domain"
)

// Rating constants.
const (
	// scoreTieEpsilon is the absolute score difference under which two
	// products are considered tied and share a rank.
	scoreTieEpsilon = 0.0001

	// ratingFloor and ratingCeil bound the percentile-mapped rating.
	ratingFloor = 5.0
	ratingCeil  = 10.0

	// missingDataRatingCap is the highest rating a product flagged with
	// missing data can reach, regardless of its percentile position.
	missingDataRatingCap = 5.1
)

// RankEntry is one product's position in a ranking snapshot.
type RankEntry struct {
	Score          float64
	Rank           int // 1 = best; ties share a rank
	HasMissingData bool
}

// Rankings maps product identity keys to dense competition ranks for one
// (category, pricing mode) snapshot. Built fresh from benchmarks plus the
// product list; never mutated after construction.
type Rankings struct {
	entries map[string]RankEntry
	total   int
}

// BuildRankings scores every price-eligible product, sorts descending and
// assigns dense competition ranks ("1224": tied products share a rank, the
// next distinct score resumes at its list position). Products without a
// valid price receive no rank at all. Equal scores order deterministically
// by identity key, so repeated calls over the same input are identical.
func BuildRankings(products []domain.RawProduct, b Benchmarks) *Rankings {
	type scored struct {
		key string
		RawScore
	}

	ranked := make([]scored, 0, len(products))
	seen := make(map[string]bool, len(products))
	for i := range products {
		p := &products[i]
		key := p.Key()
		if seen[key] {
			continue
		}
		rs, ok := scoreProduct(p, b)
		if !ok {
			continue
		}
		seen[key] = true
		ranked = append(ranked, scored{key: key, RawScore: rs})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].key < ranked[j].key
	})

	entries := make(map[string]RankEntry, len(ranked))
	rank := 0
	for i, s := range ranked {
		if i == 0 || ranked[i-1].Score-s.Score >= scoreTieEpsilon {
			rank = i + 1
		}
		entries[s.key] = RankEntry{
			Score:          s.Score,
			Rank:           rank,
			HasMissingData: s.HasMissingData,
		}
	}

	return &Rankings{entries: entries, total: len(ranked)}
}

// Lookup returns the rank entry for a product key.
func (r *Rankings) Lookup(key string) (RankEntry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Total returns the number of ranked products.
func (r *Rankings) Total() int {
	return r.total
}

// Rating derives the bounded 5.0–10.0 value rating for a product key via
// percentile interpolation over its rank. A single-product snapshot rates
// exactly 10.0. Products flagged with missing data are capped at 5.1.
// Unranked keys have no rating (ok=false), never zero.
func (r *Rankings) Rating(key string) (float64, bool) {
	e, ok := r.entries[key]
	if !ok {
		return 0, false
	}

	rating := ratingCeil
	if r.total > 1 {
		rating = ratingFloor + (float64(r.total-e.Rank)/float64(r.total-1))*(ratingCeil-ratingFloor)
	}
	rating = math.Round(rating*10) / 10

	if e.HasMissingData && rating > missingDataRatingCap {
		rating = missingDataRatingCap
	}
	return rating, true
}
