package domain

import (
	"encoding/json"
	"testing"
)

func TestRawProductUnmarshalJSON(t *testing.T) {
	t.Run("numeric fields arrive as numbers", func(t *testing.T) {
		var p RawProduct
		payload := `{"title": "Hydrate Mix", "price": 19.99, "servings": 20, "sodium_mg": 500}`
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if string(p.Price) != "19.99" {
			t.Errorf("Price = %q, want 19.99", p.Price)
		}
		if string(p.Servings) != "20" {
			t.Errorf("Servings = %q, want 20", p.Servings)
		}
		if string(p.SodiumMg) != "500" {
			t.Errorf("SodiumMg = %q, want 500", p.SodiumMg)
		}
	})

	t.Run("junk typed field does not drop the record", func(t *testing.T) {
		var p RawProduct
		payload := `{"title": "Whey Pro 100", "price": "24.99", "in_stock": "in stock"}`
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if p.Title != "Whey Pro 100" {
			t.Errorf("Title = %q, want Whey Pro 100", p.Title)
		}
		if !p.InStock {
			t.Error("InStock = false, want true for \"in stock\"")
		}
	})

	t.Run("unknown keys land in Extra", func(t *testing.T) {
		var p RawProduct
		payload := `{"title": "Whey Pro 100", "scraper_version": 3, "tags": ["new"]}`
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if len(p.Extra) != 2 {
			t.Fatalf("len(Extra) = %d, want 2", len(p.Extra))
		}
		if _, ok := p.Extra["scraper_version"]; !ok {
			t.Error("Extra missing scraper_version")
		}
	})

	t.Run("non object record fails", func(t *testing.T) {
		var p RawProduct
		if err := json.Unmarshal([]byte(`"just a string"`), &p); err == nil {
			t.Error("expected an error for a non-object record")
		}
	})
}

func TestRawProductKey(t *testing.T) {
	t.Run("url wins when present", func(t *testing.T) {
		p := RawProduct{Title: "Whey Pro 100", URL: "https://shop.example/whey"}
		if got := p.Key(); got != "https://shop.example/whey" {
			t.Errorf("Key() = %q", got)
		}
	})

	t.Run("composite fallback", func(t *testing.T) {
		p := RawProduct{Title: "Whey Pro 100", Flavor: "Vanilla", Price: "24.99"}
		if got := p.Key(); got != "Whey Pro 100|Vanilla|24.99" {
			t.Errorf("Key() = %q", got)
		}
	})
}

func TestPriceField(t *testing.T) {
	p := RawProduct{Price: "24.99", SubPrice: "19.99"}
	if got := p.PriceField(PricingOneTime); got != "24.99" {
		t.Errorf("PriceField(onetime) = %q", got)
	}
	if got := p.PriceField(PricingSubscription); got != "19.99" {
		t.Errorf("PriceField(subscription) = %q", got)
	}

	// No fallback between modes
	bare := RawProduct{Price: "24.99"}
	if got := bare.PriceField(PricingSubscription); got != "" {
		t.Errorf("PriceField(subscription) = %q, want empty", got)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"protein", CategoryProtein, false},
		{"PROTEIN", CategoryProtein, false},
		{"electrolyte", CategoryElectrolyte, false},
		{"creatine", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCategory(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestParsePricingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PricingMode
		wantErr bool
	}{
		{"", PricingOneTime, false},
		{"onetime", PricingOneTime, false},
		{"Subscription", PricingSubscription, false},
		{"monthly", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePricingMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePricingMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePricingMode(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestCategoryForRating(t *testing.T) {
	tests := []struct {
		rating float64
		want   ValueCategory
	}{
		{10.0, ValueExcellent},
		{9.5, ValueExcellent},
		{9.4, ValueGood},
		{7.0, ValueGood},
		{6.9, ValueFair},
		{6.0, ValueFair},
		{5.9, ValuePoor},
		{5.0, ValuePoor},
	}
	for _, tt := range tests {
		if got := CategoryForRating(tt.rating); got != tt.want {
			t.Errorf("CategoryForRating(%.1f) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}
