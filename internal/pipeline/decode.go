package pipeline

import (
	"encoding/json"
	"strings"
)

// Outcome tags the result of decoding a reasoning-service response.
// Callers branch on the tag instead of catching errors; a shape failure
// is an expected, recoverable condition, not an exception.
type Outcome int

const (
	// Decoded means the response parsed into the declared shape.
	Decoded Outcome = iota
	// FallbackApplied means the response did not parse and the caller
	// must substitute its deterministic fallback value.
	FallbackApplied
)

// stripFences removes optional triple-backtick wrapping, with or
// without a "json" tag, from a reasoning-service response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// DecodeResponse strips fence markers from raw and attempts to parse it
// into out. It never returns a JSON error to the caller; the outcome tag
// says whether the declared shape was met.
func DecodeResponse(raw string, out any) Outcome {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return FallbackApplied
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return FallbackApplied
	}
	return Decoded
}
