package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mohammad-safakhou/weekender/internal/telemetry"
	"github.com/mohammad-safakhou/weekender/tools/venue"
)

// Summarizer renders the curated selection as human-readable itinerary
// text.
type Summarizer struct {
	llm       CompletionProvider
	logger    *log.Logger
	telemetry *telemetry.Telemetry
}

// NewSummarizer creates the summarize stage.
func NewSummarizer(llm CompletionProvider, logger *log.Logger, tele *telemetry.Telemetry) *Summarizer {
	if logger == nil {
		logger = log.New(log.Writer(), "[SUMMARIZE] ", log.LstdFlags)
	}
	return &Summarizer{llm: llm, logger: logger, telemetry: tele}
}

// emptySelectionMessage is returned without a service call when there is
// nothing to summarize.
const emptySelectionMessage = `I couldn't find enough activities to create an itinerary for your request.
This might be because:
- The location wasn't recognized
- API keys aren't configured
- No activities matched your criteria

Please try again with a different location or check your API configuration.`

var typeMarkers = map[venue.Kind]string{
	venue.KindRestaurant: "🍽️",
	venue.KindOutdoor:    "🌳",
	venue.KindMovie:      "🎬",
	venue.KindEvent:      "🎫",
}

const maxDetailLength = 150

// Summarize delegates prose generation to the reasoning service. Unlike
// the other stages, the fallback here triggers on any error, not just a
// shape mismatch, since there is no shape to validate.
func (s *Summarizer) Summarize(ctx context.Context, curation CurationResult, intent ParsedIntent) string {
	if len(curation.Selected) == 0 {
		return emptySelectionMessage
	}

	text, err := s.llm.Complete(ctx, summarizePrompt(curation, intent))
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Printf("completion failed, rendering template fallback: %v", err)
		s.telemetry.RecordFallback(StageSummarize)
		return RenderItinerary(curation, intent)
	}
	return text
}

// RenderItinerary is the deterministic itinerary template used when the
// reasoning service is unreachable or erroring.
func RenderItinerary(curation CurationResult, intent ParsedIntent) string {
	location := intent.Location
	if location == "" {
		location = "your area"
	}
	date := intent.Date
	if date == "" {
		date = "your chosen date"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Your Weekend Plan for %s in %s\n", date, location)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	for i, activity := range curation.Selected {
		marker, ok := typeMarkers[activity.Type]
		if !ok {
			marker = "📍"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, marker, activity.Name)

		if activity.Rating > 0 {
			stars := strings.Repeat("⭐", int(activity.Rating))
			fmt.Fprintf(&b, "   Rating: %s (%.1f/5)\n", stars, activity.Rating)
		}

		details := activity.Details
		if runes := []rune(details); len(runes) > maxDetailLength {
			details = string(runes[:maxDetailLength]) + "..."
		}
		if details != "" {
			fmt.Fprintf(&b, "   %s\n", details)
		}
		if activity.Address != "" {
			fmt.Fprintf(&b, "   📍 %s\n", activity.Address)
		}
		b.WriteString("\n")
	}

	if curation.CurationNotes != "" {
		fmt.Fprintf(&b, "💡 Tip: %s\n", curation.CurationNotes)
	}
	b.WriteString("\nHave a great time! 🎊")

	return b.String()
}
