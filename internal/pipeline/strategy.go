package pipeline

import (
	"context"
	"log"

	"github.com/mohammad-safakhou/weekender/internal/telemetry"
)

// Strategist decides which activity categories to search.
type Strategist struct {
	llm       CompletionProvider
	logger    *log.Logger
	telemetry *telemetry.Telemetry
}

// NewStrategist creates the plan stage.
func NewStrategist(llm CompletionProvider, logger *log.Logger, tele *telemetry.Telemetry) *Strategist {
	if logger == nil {
		logger = log.New(log.Writer(), "[PLAN] ", log.LstdFlags)
	}
	return &Strategist{llm: llm, logger: logger, telemetry: tele}
}

// interestCategories maps stated interests to search categories for the
// deterministic fallback.
var interestCategories = []struct {
	keywords []string
	category string
}{
	{[]string{"dinner", "restaurant", "food"}, CategoryRestaurants},
	{[]string{"movie", "film", "cinema"}, CategoryMovies},
	{[]string{"event", "concert", "festival"}, CategoryEvents},
	{[]string{"outdoor", "park", "nature", "hiking"}, CategoryOutdoor},
}

// FallbackStrategy maps interests directly to categories, defaulting to
// restaurants plus outdoor when nothing matches. Priority is the first
// resulting category.
func FallbackStrategy(intent ParsedIntent) SearchStrategy {
	var categories []string
	for _, mapping := range interestCategories {
		for _, interest := range intent.Interests {
			if containsAny(interest, mapping.keywords) {
				categories = append(categories, mapping.category)
				break
			}
		}
	}
	if len(categories) == 0 {
		categories = []string{CategoryRestaurants, CategoryOutdoor}
	}
	return SearchStrategy{
		Categories: categories,
		Priority:   categories[0],
		Reasoning:  "Fallback strategy based on stated interests",
	}
}

func containsAny(interest string, keywords []string) bool {
	for _, k := range keywords {
		if interest == k {
			return true
		}
	}
	return false
}

// Plan delegates to the reasoning service; on any failure it degrades
// to the deterministic interest-to-category mapping.
func (s *Strategist) Plan(ctx context.Context, intent ParsedIntent) SearchStrategy {
	raw, err := s.llm.Complete(ctx, planPrompt(intent))
	if err != nil {
		s.logger.Printf("completion failed, applying fallback: %v", err)
		s.telemetry.RecordFallback(StagePlan)
		return FallbackStrategy(intent)
	}

	var strategy SearchStrategy
	if DecodeResponse(raw, &strategy) == FallbackApplied || len(strategy.Categories) == 0 {
		s.logger.Printf("response did not match declared shape, applying fallback")
		s.telemetry.RecordFallback(StagePlan)
		return FallbackStrategy(intent)
	}
	if strategy.Priority == "" {
		strategy.Priority = strategy.Categories[0]
	}
	return strategy
}
