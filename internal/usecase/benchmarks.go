package usecase

import (
	"github.com/scoopscore/backend/internal/domain"
)

// bounds tracks the running min/max of one metric across the eligible set.
// The zero value (no observations) normalizes everything to the midpoint.
type bounds struct {
	Min  float64
	Max  float64
	Seen bool
}

// observe folds one non-null metric observation into the bounds.
func (b *bounds) observe(v float64) {
	if !b.Seen {
		b.Min, b.Max, b.Seen = v, v, true
		return
	}
	if v < b.Min {
		b.Min = v
	}
	if v > b.Max {
		b.Max = v
	}
}

// normalize maps a raw metric value into [0,1] against the observed bounds.
// A degenerate metric (no observations, or a single distinct value) returns
// the midpoint 0.5.
func (b bounds) normalize(v float64) float64 {
	if !b.Seen || b.Max == b.Min {
		return 0.5
	}
	n := (v - b.Min) / (b.Max - b.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// Benchmarks holds the observed metric bounds for one (category, pricing
// mode) snapshot. Immutable once computed; recompute whenever the eligible
// product set changes. Only the metrics of the snapshot's category carry
// observations; the rest stay at their degenerate zero value.
type Benchmarks struct {
	Category domain.Category
	Mode     domain.PricingMode

	// Protein metrics
	ProteinPerCurrency  bounds
	ServingsPerCurrency bounds
	AmountPerCurrency   bounds

	// Electrolyte metrics
	CostPerServing bounds
	ElectrolyteMg  bounds
	ServingCount   bounds

	// Shared
	Discount bounds
}

// ComputeBenchmarks scans the product list once and records min/max per
// metric over the price-eligible products. Products without a valid price
// for the mode contribute nothing. Deterministic, O(n).
func ComputeBenchmarks(products []domain.RawProduct, category domain.Category, mode domain.PricingMode) Benchmarks {
	b := Benchmarks{Category: category, Mode: mode}

	for i := range products {
		p := &products[i]
		price, ok := parsePriceOrNull(p.PriceField(mode))
		if !ok {
			continue
		}

		b.Discount.observe(discountPercent(price, string(p.RRP)))

		servings, servingsOK := parseServings(string(p.Servings))

		switch category {
		case domain.CategoryProtein:
			if protein, ok := parsePositiveNumber(string(p.ProteinG)); ok && servingsOK {
				b.ProteinPerCurrency.observe(protein * servings / price)
			}
			if servingsOK {
				b.ServingsPerCurrency.observe(servings / price)
			}
			// The amount axis is observed for every product that exposes a
			// package mass, not just the ones that fall back to it, so the
			// fallback normalizes against a full distribution.
			if grams, ok := parseAmountGrams(string(p.Amount)); ok {
				b.AmountPerCurrency.observe(grams / price)
			}
		case domain.CategoryElectrolyte:
			if servingsOK {
				b.CostPerServing.observe(price / servings)
				b.ServingCount.observe(servings)
			}
			if mg, ok := totalElectrolyteMg(p); ok {
				b.ElectrolyteMg.observe(mg)
			}
		}
	}

	return b
}

// totalElectrolyteMg sums the per-serving sodium, potassium and magnesium
// content. Valid when at least one component parses; a record listing none
// of the three has no electrolyte signal at all.
func totalElectrolyteMg(p *domain.RawProduct) (float64, bool) {
	var total float64
	var any bool
	for _, raw := range []string{string(p.SodiumMg), string(p.PotassiumMg), string(p.MagnesiumMg)} {
		if v, ok := parsePositiveNumber(raw); ok {
			total += v
			any = true
		}
	}
	return total, any
}
