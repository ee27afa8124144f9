package usecase

import (
	"github.com/scoopscore/backend/internal/domain"
)

// missingMetricPenalty is the normalized value substituted for any metric
// that failed to parse. It deliberately sits below typical real scores so
// sparse-data products sink without being excluded — tuned empirically, not
// derived.
const missingMetricPenalty = 0.15

// Metric weights per category. Each set sums to 1.0.
const (
	weightProteinPerCurrency  = 0.383
	weightServingsPerCurrency = 0.55
	weightProteinDiscount     = 0.067

	weightCostPerServing      = 0.35
	weightElectrolyteContent  = 0.30
	weightElectrolyteDiscount = 0.20
	weightElectrolyteServings = 0.15
)

// RawScore is the weighted composite score of one product before ranking.
type RawScore struct {
	Score          float64
	HasMissingData bool
}

// scoreProduct normalizes each metric of p against the benchmark bounds and
// folds them into a weighted composite in [0,1]. Returns ok=false when the
// product has no valid price for the benchmark's pricing mode — such
// products are unscoreable and excluded from ranking entirely.
func scoreProduct(p *domain.RawProduct, b Benchmarks) (RawScore, bool) {
	price, ok := parsePriceOrNull(p.PriceField(b.Mode))
	if !ok {
		return RawScore{}, false
	}
	if b.Category == domain.CategoryElectrolyte {
		return scoreElectrolyte(p, price, b), true
	}
	return scoreProtein(p, price, b), true
}

// scoreProtein weighs protein-per-currency, servings-per-currency (with a
// package-amount fallback when the serving count is invalid) and discount.
func scoreProtein(p *domain.RawProduct, price float64, b Benchmarks) RawScore {
	servings, servingsOK := parseServings(string(p.Servings))
	protein, proteinOK := parsePositiveNumber(string(p.ProteinG))

	proteinNorm := missingMetricPenalty
	if proteinOK && servingsOK {
		proteinNorm = b.ProteinPerCurrency.normalize(protein * servings / price)
	}

	valueNorm := missingMetricPenalty
	if servingsOK {
		valueNorm = b.ServingsPerCurrency.normalize(servings / price)
	} else if grams, ok := parseAmountGrams(string(p.Amount)); ok {
		valueNorm = b.AmountPerCurrency.normalize(grams / price)
	}

	discountNorm := b.Discount.normalize(discountPercent(price, string(p.RRP)))

	return RawScore{
		Score: weightProteinPerCurrency*proteinNorm +
			weightServingsPerCurrency*valueNorm +
			weightProteinDiscount*discountNorm,
		HasMissingData: !proteinOK || !servingsOK,
	}
}

// scoreElectrolyte weighs inverse cost-per-serving, total electrolyte
// content, discount and serving count.
func scoreElectrolyte(p *domain.RawProduct, price float64, b Benchmarks) RawScore {
	servings, servingsOK := parseServings(string(p.Servings))
	mg, mgOK := totalElectrolyteMg(p)

	costNorm := missingMetricPenalty
	servingsNorm := missingMetricPenalty
	if servingsOK {
		// Cost per serving: lower is better, so the normalized form inverts.
		costNorm = 1 - b.CostPerServing.normalize(price/servings)
		servingsNorm = b.ServingCount.normalize(servings)
	}

	mgNorm := missingMetricPenalty
	if mgOK {
		mgNorm = b.ElectrolyteMg.normalize(mg)
	}

	discountNorm := b.Discount.normalize(discountPercent(price, string(p.RRP)))

	return RawScore{
		Score: weightCostPerServing*costNorm +
			weightElectrolyteContent*mgNorm +
			weightElectrolyteDiscount*discountNorm +
			weightElectrolyteServings*servingsNorm,
		HasMissingData: !servingsOK || !mgOK,
	}
}
