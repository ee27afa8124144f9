package usecase

import (
	"testing"

	"github.com/scoopscore/backend/internal/domain"
)

// proteinLadder builds descending-value protein products with identical
// protein/serving ratios: £10, £20, £30.
func proteinLadder() []domain.RawProduct {
	return []domain.RawProduct{
		{Title: "A", Price: "10", Servings: "30", ProteinG: "20"},
		{Title: "B", Price: "20", Servings: "30", ProteinG: "20"},
		{Title: "C", Price: "30", Servings: "30", ProteinG: "20"},
	}
}

func buildProteinRankings(products []domain.RawProduct) *Rankings {
	b := ComputeBenchmarks(products, domain.CategoryProtein, domain.PricingOneTime)
	return BuildRankings(products, b)
}

func mustRating(t *testing.T, r *Rankings, key string) float64 {
	t.Helper()
	rating, ok := r.Rating(key)
	if !ok {
		t.Fatalf("Rating(%q) ok = false, want true", key)
	}
	return rating
}

func TestRankingsLadder(t *testing.T) {
	products := proteinLadder()
	r := buildProteinRankings(products)

	t.Run("ranks follow descending value", func(t *testing.T) {
		wantRanks := map[string]int{"A||10": 1, "B||20": 2, "C||30": 3}
		for key, want := range wantRanks {
			e, ok := r.Lookup(key)
			if !ok {
				t.Fatalf("Lookup(%q) ok = false, want true", key)
			}
			if e.Rank != want {
				t.Errorf("Rank(%q) = %d, want %d", key, e.Rank, want)
			}
		}
	})

	t.Run("three product percentile spacing", func(t *testing.T) {
		wantRatings := map[string]float64{"A||10": 10.0, "B||20": 7.5, "C||30": 5.0}
		for key, want := range wantRatings {
			if got := mustRating(t, r, key); got != want {
				t.Errorf("Rating(%q) = %v, want %v", key, got, want)
			}
		}
	})

	t.Run("rank one has the highest rating", func(t *testing.T) {
		best := mustRating(t, r, "A||10")
		for _, key := range []string{"B||20", "C||30"} {
			if got := mustRating(t, r, key); got > best {
				t.Errorf("Rating(%q) = %v exceeds rank-1 rating %v", key, got, best)
			}
		}
	})

	t.Run("ratings stay within bounds", func(t *testing.T) {
		for _, key := range []string{"A||10", "B||20", "C||30"} {
			got := mustRating(t, r, key)
			if got < 5.0 || got > 10.0 {
				t.Errorf("Rating(%q) = %v, want within [5.0, 10.0]", key, got)
			}
		}
	})
}

func TestRankingsSingleProduct(t *testing.T) {
	products := []domain.RawProduct{
		{Title: "Solo", Price: "25", Servings: "30", ProteinG: "24"},
	}
	r := buildProteinRankings(products)

	if r.Total() != 1 {
		t.Fatalf("Total() = %d, want 1", r.Total())
	}
	if got := mustRating(t, r, "Solo||25"); got != 10.0 {
		t.Errorf("Rating = %v, want 10.0", got)
	}
}

func TestRankingsTies(t *testing.T) {
	// Two identical offers under different identities plus one worse one.
	products := []domain.RawProduct{
		{Title: "Twin", Price: "10", Servings: "30", ProteinG: "20", URL: "https://a.example/p1"},
		{Title: "Twin", Price: "10", Servings: "30", ProteinG: "20", URL: "https://b.example/p1"},
		{Title: "C", Price: "30", Servings: "30", ProteinG: "20"},
	}
	r := buildProteinRankings(products)

	e1, _ := r.Lookup("https://a.example/p1")
	e2, _ := r.Lookup("https://b.example/p1")
	e3, ok := r.Lookup("C||30")
	if !ok {
		t.Fatal("Lookup(C) ok = false, want true")
	}

	t.Run("tied products share rank 1", func(t *testing.T) {
		if e1.Rank != 1 || e2.Rank != 1 {
			t.Errorf("tied ranks = %d, %d, want 1, 1", e1.Rank, e2.Rank)
		}
	})

	t.Run("ties consume rank slots", func(t *testing.T) {
		if e3.Rank != 3 {
			t.Errorf("third product rank = %d, want 3 (dense competition ranking)", e3.Rank)
		}
	})

	t.Run("tied products share the rating", func(t *testing.T) {
		r1 := mustRating(t, r, "https://a.example/p1")
		r2 := mustRating(t, r, "https://b.example/p1")
		if r1 != 10.0 || r2 != 10.0 {
			t.Errorf("tied ratings = %v, %v, want 10.0, 10.0", r1, r2)
		}
		if got := mustRating(t, r, "C||30"); got != 5.0 {
			t.Errorf("distinct third rating = %v, want 5.0", got)
		}
	})
}

func TestRankingsNearTieEpsilon(t *testing.T) {
	b := Benchmarks{Category: domain.CategoryProtein, Mode: domain.PricingOneTime}
	b.ServingsPerCurrency = bounds{Min: 1, Max: 2, Seen: true}
	b.ProteinPerCurrency = bounds{Min: 1, Max: 2, Seen: true}

	// Servings per currency of 1.50000 and 1.50001 land well inside the
	// 0.0001 score epsilon.
	products := []domain.RawProduct{
		{Title: "X", Price: "100", Servings: "150.000", ProteinG: "150"},
		{Title: "Y", Price: "100", Servings: "150.001", ProteinG: "150"},
	}
	r := BuildRankings(products, b)

	ex, _ := r.Lookup("X||100")
	ey, _ := r.Lookup("Y||100")
	if ex.Rank != ey.Rank {
		t.Errorf("near-tied ranks = %d, %d, want equal", ex.Rank, ey.Rank)
	}
}

func TestRankingsMissingDataCap(t *testing.T) {
	// The sparse product would top the list on servings value alone.
	products := []domain.RawProduct{
		{Title: "Sparse", Price: "5", Servings: "60"},
		{Title: "Full1", Price: "20", Servings: "30", ProteinG: "20"},
		{Title: "Full2", Price: "25", Servings: "30", ProteinG: "20"},
	}
	r := buildProteinRankings(products)

	e, ok := r.Lookup("Sparse||5")
	if !ok {
		t.Fatal("Lookup(Sparse) ok = false, want true")
	}
	if !e.HasMissingData {
		t.Fatal("HasMissingData = false, want true")
	}
	if e.Rank != 1 {
		t.Fatalf("Rank = %d, want 1 (penalty suppresses but does not exclude)", e.Rank)
	}
	if got := mustRating(t, r, "Sparse||5"); got != 5.1 {
		t.Errorf("Rating = %v, want capped 5.1", got)
	}
}

func TestRankingsNoPriceExclusion(t *testing.T) {
	products := append(proteinLadder(),
		domain.RawProduct{Title: "Free?", Price: "0", Servings: "30", ProteinG: "20"},
		domain.RawProduct{Title: "Unpriced", Servings: "30", ProteinG: "20"},
	)
	r := buildProteinRankings(products)

	if r.Total() != 3 {
		t.Fatalf("Total() = %d, want 3", r.Total())
	}
	for _, key := range []string{"Free?||0", "Unpriced||"} {
		if _, ok := r.Lookup(key); ok {
			t.Errorf("Lookup(%q) ok = true, want excluded", key)
		}
		if _, ok := r.Rating(key); ok {
			t.Errorf("Rating(%q) ok = true, want null", key)
		}
	}
}

func TestRankingsEmptyInput(t *testing.T) {
	r := buildProteinRankings(nil)
	if r.Total() != 0 {
		t.Fatalf("Total() = %d, want 0", r.Total())
	}
	if _, ok := r.Rating("anything"); ok {
		t.Error("Rating on empty rankings ok = true, want false")
	}
}

func TestRankingsDeterminism(t *testing.T) {
	products := []domain.RawProduct{
		{Title: "Twin", Price: "10", Servings: "30", ProteinG: "20", URL: "https://a.example/p1"},
		{Title: "Twin", Price: "10", Servings: "30", ProteinG: "20", URL: "https://b.example/p1"},
		{Title: "B", Price: "20", Servings: "30", ProteinG: "20"},
		{Title: "C", Price: "30", Servings: "30", ProteinG: "20"},
	}

	first := buildProteinRankings(products)
	for i := 0; i < 5; i++ {
		again := buildProteinRankings(products)
		for _, p := range products {
			key := p.Key()
			a, aOK := first.Rating(key)
			b, bOK := again.Rating(key)
			if aOK != bOK || a != b {
				t.Fatalf("Rating(%q) differs across identical runs: (%v,%v) vs (%v,%v)", key, a, aOK, b, bOK)
			}
		}
	}
}
