package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonPriceCharsRegex   = regexp.MustCompile(`[^0-9.]`)
	nonNumericCharsRegex = regexp.MustCompile(`[^0-9.]`)
	amountRegex          = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kg|g)\b`)
	massVolumeUnitRegex  = regexp.MustCompile(`(?i)\d\s*(kg|g|mg|ml|l|oz|lbs?)\b`)
)

// parsePriceOrNull converts a scraped price string ("£29.99", "$34.50",
// "29.99 GBP") to a float. A price of 0, an empty string, or unparseable input all
// mean "no valid price": the product is unscoreable, never free.
func parsePriceOrNull(raw string) (float64, bool) {
	cleaned := nonPriceCharsRegex.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

// parsePriceOrInfinity is the sort-to-bottom variant of price parsing: a
// product without a valid price sorts after every priced product in an
// ascending price sort. Kept as a separate function; the two failure modes
// serve different call sites (exclusion vs ordering) and must not be merged.
func parsePriceOrInfinity(raw string) float64 {
	v, ok := parsePriceOrNull(raw)
	if !ok {
		return math.Inf(1)
	}
	return v
}

// parseServings accepts a serving count only when it is a countable unit.
// "60" and "30 servings" are valid; "500g" or "1.5l" describe package mass
// or volume and parse to nothing rather than a coerced weight.
func parseServings(raw string) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}
	if massVolumeUnitRegex.MatchString(raw) {
		return 0, false
	}
	return parsePositiveNumber(raw)
}

// parseAmountGrams extracts a package amount in grams from strings like
// "500g", "2.27 kg" or "Bag 1kg", normalizing kilograms to grams.
func parseAmountGrams(raw string) (float64, bool) {
	m := amountRegex.FindStringSubmatch(raw)
	if len(m) < 3 {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	if strings.EqualFold(m[2], "kg") {
		v *= 1000
	}
	return v, true
}

// parsePositiveNumber strips non-numeric characters and parses the rest as a
// positive physical quantity (protein grams, electrolyte milligrams).
func parsePositiveNumber(raw string) (float64, bool) {
	cleaned := nonNumericCharsRegex.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

// discountPercent computes the rounded discount against an optional RRP.
// It is 0 unless the RRP parses and is strictly above the current price.
func discountPercent(price float64, rawRRP string) float64 {
	rrp, ok := parsePriceOrNull(rawRRP)
	if !ok || rrp <= price {
		return 0
	}
	return math.Round(((rrp - price) / rrp) * 100)
}
