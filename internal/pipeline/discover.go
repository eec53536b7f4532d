package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/mohammad-safakhou/weekender/internal/telemetry"
	"github.com/mohammad-safakhou/weekender/tools/venue"
)

// Discoverer generates activity candidates for the planned categories
// and optionally enriches them with venue contact details.
type Discoverer struct {
	llm       CompletionProvider
	enricher  Enricher
	logger    *log.Logger
	telemetry *telemetry.Telemetry
}

// NewDiscoverer creates the discover stage. enricher may be nil, which
// disables enrichment entirely.
func NewDiscoverer(llm CompletionProvider, enricher Enricher, logger *log.Logger, tele *telemetry.Telemetry) *Discoverer {
	if logger == nil {
		logger = log.New(log.Writer(), "[DISCOVER] ", log.LstdFlags)
	}
	return &Discoverer{llm: llm, enricher: enricher, logger: logger, telemetry: tele}
}

// FallbackCandidates is the single synthetic candidate substituted when
// the reasoning service responds but not in the declared shape.
func FallbackCandidates(location string) []ActivityCandidate {
	return []ActivityCandidate{{
		Name:    "Explore " + location,
		Type:    venue.KindOutdoor,
		Rating:  4.5,
		Details: fmt.Sprintf("Discover the local attractions and activities in %s", location),
	}}
}

// Discover delegates to the reasoning service. A shape failure degrades
// to the synthetic "Explore {location}" candidate; a transport failure
// degrades to an empty sequence. Enrichment augments candidates and can
// never fail the stage.
func (d *Discoverer) Discover(ctx context.Context, intent ParsedIntent, strategy SearchStrategy) []ActivityCandidate {
	raw, err := d.llm.Complete(ctx, discoverPrompt(intent, strategy))
	if err != nil {
		d.logger.Printf("completion failed, no candidates: %v", err)
		d.telemetry.RecordFallback(StageDiscover)
		return nil
	}

	var candidates []ActivityCandidate
	if DecodeResponse(raw, &candidates) == FallbackApplied {
		d.logger.Printf("response did not match declared shape, applying fallback")
		d.telemetry.RecordFallback(StageDiscover)
		return FallbackCandidates(intent.Location)
	}

	d.enrich(ctx, intent.Location, candidates)
	return candidates
}

// enrich attempts a best-effort venue lookup per candidate. Lookups run
// one at a time; the scraper inserts its own courtesy pause between
// successive requests. Movies are skipped since showtimes are
// location-independent.
func (d *Discoverer) enrich(ctx context.Context, location string, candidates []ActivityCandidate) {
	if d.enricher == nil {
		return
	}
	for i := range candidates {
		if candidates[i].Type == venue.KindMovie {
			continue
		}
		details, err := d.enricher.Lookup(ctx, candidates[i].Name, location, candidates[i].Type)
		if err != nil {
			d.telemetry.RecordEnrichment("miss")
			continue
		}
		d.telemetry.RecordEnrichment("hit")
		candidates[i].Address = details.Address
		candidates[i].Phone = details.Phone
		candidates[i].Website = details.Website
	}
}
