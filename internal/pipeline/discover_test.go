package pipeline

import (
	"context"
	"testing"

	"github.com/mohammad-safakhou/weekender/tools/venue"
)

func TestDiscoverTransportErrorYieldsNoCandidates(t *testing.T) {
	d := NewDiscoverer(&fakeLLM{}, nil, nil, nil)

	candidates := d.Discover(context.Background(), ParsedIntent{Location: "Seattle"}, SearchStrategy{})

	if len(candidates) != 0 {
		t.Fatalf("expected no candidates on transport failure, got %d", len(candidates))
	}
}

func TestDiscoverShapeFailureYieldsExploreFallback(t *testing.T) {
	llm := &fakeLLM{fn: func(string) (string, error) { return "I recommend checking online!", nil }}
	d := NewDiscoverer(llm, nil, nil, nil)

	candidates := d.Discover(context.Background(), ParsedIntent{Location: "Seattle"}, SearchStrategy{})

	if len(candidates) != 1 {
		t.Fatalf("expected single synthetic candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Name != "Explore Seattle" || c.Type != venue.KindOutdoor || c.Rating != 4.5 {
		t.Fatalf("unexpected fallback candidate: %+v", c)
	}
}

func TestDiscoverEnrichesCandidates(t *testing.T) {
	llm := &fakeLLM{fn: func(string) (string, error) {
		return `[
			{"name":"Canlis","type":"restaurant","rating":4.8,"details":"Fine dining"},
			{"name":"Dune Part Two","type":"movie","rating":4.6,"details":"IMAX"},
			{"name":"Discovery Park","type":"outdoor","rating":4.7,"details":"Trails"}
		]`, nil
	}}
	enricher := &fakeEnricher{details: venue.Details{Address: "2576 Aurora Ave N", Phone: "(206) 283-3313"}}
	d := NewDiscoverer(llm, enricher, nil, nil)

	candidates := d.Discover(context.Background(), ParsedIntent{Location: "Seattle"}, SearchStrategy{})

	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if len(enricher.looked) != 2 {
		t.Fatalf("expected movies to be skipped, looked up %v", enricher.looked)
	}
	if candidates[0].Address != "2576 Aurora Ave N" || candidates[0].Phone == "" {
		t.Fatalf("expected enrichment details on candidate: %+v", candidates[0])
	}
	if candidates[1].Address != "" {
		t.Fatalf("movie should not be enriched: %+v", candidates[1])
	}
}

func TestDiscoverEnrichmentFailureIsNonFatal(t *testing.T) {
	llm := &fakeLLM{fn: func(string) (string, error) {
		return `[{"name":"Canlis","type":"restaurant","rating":4.8,"details":"Fine dining"}]`, nil
	}}
	enricher := &fakeEnricher{err: venue.ErrNotFound}
	d := NewDiscoverer(llm, enricher, nil, nil)

	candidates := d.Discover(context.Background(), ParsedIntent{Location: "Seattle"}, SearchStrategy{})

	if len(candidates) != 1 {
		t.Fatalf("expected candidate to survive enrichment miss, got %d", len(candidates))
	}
	if candidates[0].Address != "" {
		t.Fatalf("expected no address on enrichment miss")
	}
}
