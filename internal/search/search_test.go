package search

import (
	"testing"

	"github.com/mohammad-safakhou/weekender/internal/pipeline"
)

func TestIndexAndSearch(t *testing.T) {
	idx, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer idx.Close()

	runs := []pipeline.RunResult{
		{
			ID:        "run-1",
			Request:   pipeline.Request{Text: "anniversary dinner in Seattle"},
			Intent:    pipeline.ParsedIntent{Location: "Seattle"},
			Itinerary: "Dinner at Canlis followed by a waterfront walk",
		},
		{
			ID:        "run-2",
			Request:   pipeline.Request{Text: "museums in Paris"},
			Intent:    pipeline.ParsedIntent{Location: "Paris"},
			Itinerary: "A day at the Louvre",
		},
	}
	for _, run := range runs {
		if err := idx.IndexRun(run); err != nil {
			t.Fatalf("index run %s: %v", run.ID, err)
		}
	}

	hits, err := idx.Search("Canlis", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "run-1" {
		t.Fatalf("unexpected hits: %+v", hits)
	}

	hits, err = idx.Search("Paris", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "run-2" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestSearchNoMatches(t *testing.T) {
	idx, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer idx.Close()

	hits, err := idx.Search("anything", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %+v", hits)
	}
}

func TestSearchClampsLimit(t *testing.T) {
	idx, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer idx.Close()

	if _, err := idx.Search("anything", -1); err != nil {
		t.Fatalf("negative limit should be clamped: %v", err)
	}
	if _, err := idx.Search("anything", 500); err != nil {
		t.Fatalf("oversized limit should be clamped: %v", err)
	}
}
