package pipeline

import (
	"context"
	"log"
	"sort"

	"github.com/mohammad-safakhou/weekender/internal/telemetry"
	"github.com/mohammad-safakhou/weekender/tools/venue"
)

// Curator filters and ranks discovered candidates into a bounded
// selection.
type Curator struct {
	llm       CompletionProvider
	logger    *log.Logger
	telemetry *telemetry.Telemetry
}

// NewCurator creates the curate stage.
func NewCurator(llm CompletionProvider, logger *log.Logger, tele *telemetry.Telemetry) *Curator {
	if logger == nil {
		logger = log.New(log.Writer(), "[CURATE] ", log.LstdFlags)
	}
	return &Curator{llm: llm, logger: logger, telemetry: tele}
}

// emptyCurationNotes is the fixed result for an empty candidate list.
const emptyCurationNotes = "No activities found to curate."

// FallbackCuration is the deterministic curation: candidates sorted by
// rating descending, then greedily selected while a candidate's type is
// new or fewer than three are chosen, capped at five.
func FallbackCuration(candidates []ActivityCandidate) CurationResult {
	sorted := make([]ActivityCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	var selected []ActivityCandidate
	typesSeen := make(map[venue.Kind]bool)
	for _, candidate := range sorted {
		if !typesSeen[candidate.Type] || len(selected) < 3 {
			selected = append(selected, candidate)
			typesSeen[candidate.Type] = true
			if len(selected) >= 5 {
				break
			}
		}
	}

	return CurationResult{
		Selected:      selected,
		CurationNotes: "Curated based on ratings and variety",
	}
}

// Curate delegates ranking to the reasoning service. An empty candidate
// list short-circuits without any service call; a shape failure degrades
// to the deterministic fallback curation.
func (c *Curator) Curate(ctx context.Context, candidates []ActivityCandidate, intent ParsedIntent) CurationResult {
	if len(candidates) == 0 {
		return CurationResult{Selected: []ActivityCandidate{}, CurationNotes: emptyCurationNotes}
	}

	raw, err := c.llm.Complete(ctx, curatePrompt(candidates, intent))
	if err != nil {
		c.logger.Printf("completion failed, applying fallback: %v", err)
		c.telemetry.RecordFallback(StageCurate)
		return FallbackCuration(candidates)
	}

	var result CurationResult
	if DecodeResponse(raw, &result) == FallbackApplied || len(result.Selected) == 0 {
		c.logger.Printf("response did not match declared shape, applying fallback")
		c.telemetry.RecordFallback(StageCurate)
		return FallbackCuration(candidates)
	}
	return result
}
