package usecase

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/scoopscore/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// normalizeTitle collapses a scraped title to a comparison form: lowercase,
// alphanumerics only, single spaces.
func normalizeTitle(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// Deduplicate removes exact duplicate records: same normalized title, same
// flavor, same numeric price/nutrition fields. Among duplicates the record
// with the higher data-completeness score is kept. Output preserves first-
// seen order and the function is idempotent; input is never mutated.
func Deduplicate(products []domain.RawProduct) []domain.RawProduct {
	out := make([]domain.RawProduct, 0, len(products))
	index := make(map[string]int, len(products))

	for i := range products {
		p := products[i]
		key := dedupKey(&p)
		at, exists := index[key]
		if !exists {
			index[key] = len(out)
			out = append(out, p)
			continue
		}
		if completenessScore(&p) > completenessScore(&out[at]) {
			out[at] = p
		}
	}

	return out
}

// dedupKey builds the exact-duplicate composite key. Numeric fields join in
// parsed form so "£24.99" and "24.99" collapse; unparseable fields join as
// a placeholder, keeping records with different junk apart.
func dedupKey(p *domain.RawProduct) string {
	parts := []string{
		normalizeTitle(p.Title),
		strings.ToLower(strings.TrimSpace(p.Flavor)),
		numericKeyPart(parsePriceOrNull(string(p.Price))),
		numericKeyPart(parsePriceOrNull(string(p.RRP))),
		numericKeyPart(parsePriceOrNull(string(p.SubPrice))),
		numericKeyPart(parseServings(string(p.Servings))),
		numericKeyPart(parsePositiveNumber(string(p.ProteinG))),
		numericKeyPart(parsePositiveNumber(string(p.SodiumMg))),
		numericKeyPart(parsePositiveNumber(string(p.PotassiumMg))),
		numericKeyPart(parsePositiveNumber(string(p.MagnesiumMg))),
		numericKeyPart(parseAmountGrams(string(p.Amount))),
	}
	return strings.Join(parts, "|")
}

func numericKeyPart(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// completenessScore is a simple point-sum over which optional fields are
// present, used to pick the survivor among exact duplicates.
func completenessScore(p *domain.RawProduct) int {
	score := 0
	for _, field := range []string{
		p.Flavor,
		string(p.RRP),
		string(p.SubPrice),
		string(p.Servings),
		string(p.ProteinG),
		string(p.SodiumMg),
		string(p.PotassiumMg),
		string(p.MagnesiumMg),
		string(p.Amount),
		p.PackageSize,
		p.Format,
		p.URL,
		p.ImageURL,
	} {
		if strings.TrimSpace(field) != "" {
			score++
		}
	}
	return score
}

// GroupVariants clusters flavor/variant records of the same underlying
// product into one display entity. Protein products group by title alone;
// electrolyte products also split by package size. Within a group, variants
// order by value rating descending with an identity-key ascending tie-break
// (the underlying sort stability is not relied on), and the top variant
// becomes the group's default display record. Input records are copied, not
// mutated, and grouping is idempotent.
func GroupVariants(products []domain.RawProduct, category domain.Category, r *Rankings) []domain.GroupedProduct {
	type cluster struct {
		members []domain.RawProduct
	}

	order := make([]string, 0, len(products))
	clusters := make(map[string]*cluster, len(products))

	for i := range products {
		p := products[i]
		key := groupKey(&p, category)
		c, ok := clusters[key]
		if !ok {
			c = &cluster{}
			clusters[key] = c
			order = append(order, key)
		}
		c.members = append(c.members, p)
	}

	groups := make([]domain.GroupedProduct, 0, len(order))
	for _, key := range order {
		members := clusters[key].members
		sortVariants(members, r)
		groups = append(groups, domain.GroupedProduct{
			RawProduct:   members[0],
			Variants:     members,
			VariantCount: len(members),
		})
	}

	return groups
}

// groupKey builds the coarse variant-grouping key.
func groupKey(p *domain.RawProduct, category domain.Category) string {
	key := normalizeTitle(p.Title)
	if category == domain.CategoryElectrolyte {
		key += "|" + strings.ToLower(strings.TrimSpace(p.PackageSize))
	}
	return key
}

// sortVariants orders a group best-value first. Unrated variants (no valid
// price) sink below every rated one.
func sortVariants(members []domain.RawProduct, r *Rankings) {
	type entry struct {
		product domain.RawProduct
		rating  float64
		rated   bool
		key     string
	}
	entries := make([]entry, len(members))
	for i := range members {
		key := members[i].Key()
		rating, rated := r.Rating(key)
		entries[i] = entry{product: members[i], rating: rating, rated: rated, key: key}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.rated != b.rated {
			return a.rated
		}
		if a.rating != b.rating {
			return a.rating > b.rating
		}
		return a.key < b.key
	})

	for i := range entries {
		members[i] = entries[i].product
	}
}
