package budget

import (
	"strings"
	"testing"
)

func TestCurrencyFor(t *testing.T) {
	if c := CurrencyFor("Seattle"); c.Symbol != "$" || c.Code != "USD" {
		t.Fatalf("unexpected currency for Seattle: %+v", c)
	}
	if c := CurrencyFor("Paris"); c.Symbol != "€" || c.Code != "EUR" {
		t.Fatalf("unexpected currency for Paris: %+v", c)
	}
	if c := CurrencyFor("london"); c.Code != "GBP" {
		t.Fatalf("lookup should be case insensitive: %+v", c)
	}
	if c := CurrencyFor("Atlantis"); c.Code != "USD" {
		t.Fatalf("unknown locations must default to USD: %+v", c)
	}
}

func TestEstimateActivityKeywords(t *testing.T) {
	est := EstimateActivity(Activity{Type: "restaurant", Details: "Tasting menu with wine pairing", Rating: 4.2})
	if est.Category != "fine_dining" || est.Range.Min != 80 {
		t.Fatalf("expected fine dining band, got %+v", est)
	}

	est = EstimateActivity(Activity{Type: "restaurant", Details: "casual counter spot", Rating: 4.9})
	if est.Category != "budget" {
		t.Fatalf("keywords should outrank rating, got %+v", est)
	}

	est = EstimateActivity(Activity{Type: "outdoor", Details: "Scenic waterfront trail"})
	if est.Category != "free" || est.Range.Max != 0 {
		t.Fatalf("expected free outdoor band, got %+v", est)
	}

	est = EstimateActivity(Activity{Type: "movie", Details: "IMAX screening"})
	if est.Category != "premium" {
		t.Fatalf("expected premium movie band, got %+v", est)
	}

	est = EstimateActivity(Activity{Type: "event", Details: "Live band at the pier"})
	if est.Category != "concert" {
		t.Fatalf("expected concert band, got %+v", est)
	}
}

func TestEstimateActivityRatingBands(t *testing.T) {
	if est := EstimateActivity(Activity{Type: "restaurant", Details: "neighborhood bistro", Rating: 4.6}); est.Category != "upscale" {
		t.Fatalf("expected upscale for 4.6 rating, got %+v", est)
	}
	if est := EstimateActivity(Activity{Type: "restaurant", Details: "neighborhood bistro", Rating: 4.2}); est.Category != "moderate" {
		t.Fatalf("expected moderate for 4.2 rating, got %+v", est)
	}
	if est := EstimateActivity(Activity{Type: "restaurant", Details: "neighborhood bistro", Rating: 3.6}); est.Category != "budget" {
		t.Fatalf("expected budget for 3.6 rating, got %+v", est)
	}
}

func TestAnalyzeMultipliesPerPersonTypes(t *testing.T) {
	activities := []Activity{
		{Name: "Canlis", Type: "restaurant", Details: "fine dining", Rating: 4.8},
		{Name: "Discovery Park", Type: "outdoor", Details: "forest trail"},
	}

	analysis := Analyze(activities, 2, "Seattle")

	if analysis.Currency.Code != "USD" {
		t.Fatalf("unexpected currency: %+v", analysis.Currency)
	}
	// Restaurant doubles for the group; the free trail stays flat.
	if analysis.TotalMin != 160 || analysis.TotalMax != 300 {
		t.Fatalf("unexpected totals: %v-%v", analysis.TotalMin, analysis.TotalMax)
	}
	if analysis.PerPersonMin != 80 || analysis.PerPersonMax != 150 {
		t.Fatalf("unexpected per-person: %v-%v", analysis.PerPersonMin, analysis.PerPersonMax)
	}
}

func TestAnalyzeClampsGroupSize(t *testing.T) {
	analysis := Analyze([]Activity{{Name: "Cafe", Type: "restaurant", Details: "casual", Rating: 4.0}}, 0, "Seattle")
	if analysis.GroupSize != 1 {
		t.Fatalf("expected group size clamped to 1, got %d", analysis.GroupSize)
	}
	if analysis.TotalMin != 10 || analysis.TotalMax != 20 {
		t.Fatalf("unexpected totals: %v-%v", analysis.TotalMin, analysis.TotalMax)
	}
}

func TestFormatSummary(t *testing.T) {
	analysis := Analyze([]Activity{
		{Name: "Canlis", Type: "restaurant", Details: "fine dining", Rating: 4.8},
		{Name: "Discovery Park", Type: "outdoor", Details: "forest trail"},
	}, 2, "Paris")

	out := FormatSummary(analysis)

	if !strings.Contains(out, "Budget Estimate (for 2 people)") {
		t.Fatalf("missing group header: %q", out)
	}
	if !strings.Contains(out, "Total: €160 - €300") {
		t.Fatalf("missing localized total: %q", out)
	}
	if !strings.Contains(out, "- Discovery Park: FREE") {
		t.Fatalf("free items should render as FREE: %q", out)
	}
	if !strings.Contains(out, "- Canlis: €80-€150/person (€160-€300 total)") {
		t.Fatalf("missing per-person breakdown: %q", out)
	}
}

func TestFormatSummarySolo(t *testing.T) {
	analysis := Analyze([]Activity{{Name: "Cafe", Type: "restaurant", Details: "casual", Rating: 4.0}}, 1, "Seattle")

	out := FormatSummary(analysis)

	if strings.Contains(out, "people") {
		t.Fatalf("solo summary should not mention group size: %q", out)
	}
	if !strings.Contains(out, "Total: $10 - $20") {
		t.Fatalf("missing solo total: %q", out)
	}
}
