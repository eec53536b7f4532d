package pipeline

import (
	"context"
	"log"

	"github.com/mohammad-safakhou/weekender/internal/telemetry"
)

// Extractor turns a free-text request into a ParsedIntent.
type Extractor struct {
	llm       CompletionProvider
	logger    *log.Logger
	telemetry *telemetry.Telemetry
}

// NewExtractor creates the extract stage.
func NewExtractor(llm CompletionProvider, logger *log.Logger, tele *telemetry.Telemetry) *Extractor {
	if logger == nil {
		logger = log.New(log.Writer(), "[EXTRACT] ", log.LstdFlags)
	}
	return &Extractor{llm: llm, logger: logger, telemetry: tele}
}

// FallbackIntent is the fixed extraction fallback: the original request
// text is preserved as context so downstream stages lose nothing.
func FallbackIntent(requestText string) ParsedIntent {
	return ParsedIntent{
		Date:      "not specified",
		Location:  "not specified",
		Interests: []string{"general"},
		Context:   requestText,
	}
}

// Extract delegates to the reasoning service and validates the declared
// shape. Any failure, transport or shape, degrades to the fixed fallback
// intent; this stage never aborts the pipeline.
func (e *Extractor) Extract(ctx context.Context, req Request) ParsedIntent {
	raw, err := e.llm.Complete(ctx, extractPrompt(req.Text))
	if err != nil {
		e.logger.Printf("completion failed, applying fallback: %v", err)
		e.telemetry.RecordFallback(StageExtract)
		return FallbackIntent(req.Text)
	}

	var intent ParsedIntent
	if DecodeResponse(raw, &intent) == FallbackApplied {
		e.logger.Printf("response did not match declared shape, applying fallback")
		e.telemetry.RecordFallback(StageExtract)
		return FallbackIntent(req.Text)
	}
	return intent
}
