package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Category identifies a product vertical. Each category runs through the
// same rating pipeline with its own metric set.
type Category string

const (
	CategoryProtein     Category = "protein"
	CategoryElectrolyte Category = "electrolyte"
)

// ParseCategory validates a category string from the API path.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(s)) {
	case CategoryProtein:
		return CategoryProtein, nil
	case CategoryElectrolyte:
		return CategoryElectrolyte, nil
	}
	return "", ErrInvalidCategory
}

// PricingMode selects which price field feeds scoring. Electrolyte vendors
// list both a one-time and a subscription price; protein listings only carry
// the one-time price.
type PricingMode string

const (
	PricingOneTime      PricingMode = "onetime"
	PricingSubscription PricingMode = "subscription"
)

// ParsePricingMode validates a pricing mode query parameter. Empty input
// defaults to one-time pricing.
func ParsePricingMode(s string) (PricingMode, error) {
	switch PricingMode(strings.ToLower(s)) {
	case "":
		return PricingOneTime, nil
	case PricingOneTime:
		return PricingOneTime, nil
	case PricingSubscription:
		return PricingSubscription, nil
	}
	return "", ErrInvalidPricingMode
}

// FlexString holds a scraped field that retailers deliver as either a JSON
// string or a bare number. Anything else (null, objects, arrays) decodes to
// the empty string rather than failing the whole record.
type FlexString string

// UnmarshalJSON implements tolerant decoding for FlexString.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	*f = ""
	return nil
}

// RawProduct is one scraped catalog record. Every field except the price is
// optional and may hold junk ("N/A", "£29.99", "500g"); parsing into numbers
// happens downstream in the rating engine. Fields the schema does not name
// are preserved in Extra so catalog additions never break decoding.
type RawProduct struct {
	Title       string     `json:"title"`
	Flavor      string     `json:"flavor,omitempty"`
	Price       FlexString `json:"price,omitempty"`
	RRP         FlexString `json:"rrp,omitempty"`
	SubPrice    FlexString `json:"subscription_price,omitempty"`
	Servings    FlexString `json:"servings,omitempty"`
	ProteinG    FlexString `json:"protein_per_serving,omitempty"`
	SodiumMg    FlexString `json:"sodium_mg,omitempty"`
	PotassiumMg FlexString `json:"potassium_mg,omitempty"`
	MagnesiumMg FlexString `json:"magnesium_mg,omitempty"`
	Amount      FlexString `json:"amount,omitempty"`
	PackageSize string     `json:"package_size,omitempty"`
	Format      string     `json:"format,omitempty"`
	URL         string     `json:"url,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	InStock     bool       `json:"in_stock,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// rawProductAlias avoids UnmarshalJSON recursion.
type rawProductAlias RawProduct

// knownProductFields are the keys consumed by the typed schema; everything
// else lands in Extra.
var knownProductFields = map[string]bool{
	"title": true, "flavor": true, "price": true, "rrp": true,
	"subscription_price": true, "servings": true, "protein_per_serving": true,
	"sodium_mg": true, "potassium_mg": true, "magnesium_mg": true,
	"amount": true, "package_size": true, "format": true,
	"url": true, "image_url": true, "in_stock": true,
}

// UnmarshalJSON decodes the typed fields tolerantly and collects unknown
// keys into Extra. A record that is not a JSON object at all still yields an
// error so the catalog client can reject a malformed payload wholesale.
func (p *RawProduct) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var alias rawProductAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		// Retry field-by-field: a single junk-typed field (e.g. a boolean
		// "in_stock" arriving as "yes") must not drop the record.
		decodeLooseProduct(fields, &alias)
	}

	for key := range fields {
		if knownProductFields[key] {
			continue
		}
		if alias.Extra == nil {
			alias.Extra = make(map[string]json.RawMessage)
		}
		alias.Extra[key] = fields[key]
	}

	*p = RawProduct(alias)
	return nil
}

// decodeLooseProduct salvages whatever fields decode cleanly from a record
// whose strict decode failed.
func decodeLooseProduct(fields map[string]json.RawMessage, out *rawProductAlias) {
	str := func(key string) string {
		var s string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil {
			return s
		}
		return ""
	}
	flex := func(key string) FlexString {
		var f FlexString
		if raw, ok := fields[key]; ok {
			_ = f.UnmarshalJSON(raw)
		}
		return f
	}

	out.Title = str("title")
	out.Flavor = str("flavor")
	out.Price = flex("price")
	out.RRP = flex("rrp")
	out.SubPrice = flex("subscription_price")
	out.Servings = flex("servings")
	out.ProteinG = flex("protein_per_serving")
	out.SodiumMg = flex("sodium_mg")
	out.PotassiumMg = flex("potassium_mg")
	out.MagnesiumMg = flex("magnesium_mg")
	out.Amount = flex("amount")
	out.PackageSize = str("package_size")
	out.Format = str("format")
	out.URL = str("url")
	out.ImageURL = str("image_url")

	var inStock bool
	if raw, ok := fields["in_stock"]; ok {
		if json.Unmarshal(raw, &inStock) != nil {
			var s string
			if json.Unmarshal(raw, &s) == nil {
				inStock = strings.EqualFold(s, "true") || strings.EqualFold(s, "in stock")
			}
		}
	}
	out.InStock = inStock
}

// Key derives the product's identity: the product page URL when present,
// otherwise a composite of title, flavor and price. No stable ID is
// guaranteed by the scrapers.
func (p *RawProduct) Key() string {
	if p.URL != "" {
		return p.URL
	}
	return p.Title + "|" + p.Flavor + "|" + string(p.Price)
}

// PriceField returns the raw price string for the given pricing mode. There
// is no fallback between modes: a product without a subscription price is
// simply not eligible in subscription mode.
func (p *RawProduct) PriceField(mode PricingMode) string {
	if mode == PricingSubscription {
		return string(p.SubPrice)
	}
	return string(p.Price)
}

// GroupedProduct is a display-level aggregate of variant records of the same
// underlying product. The embedded RawProduct is a copy of the best-rated
// variant; Variants holds all members, best-value first.
type GroupedProduct struct {
	RawProduct
	Variants     []RawProduct `json:"variants"`
	VariantCount int          `json:"variant_count"`
}
