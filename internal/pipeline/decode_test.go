package pipeline

import "testing"

func TestDecodeResponsePlainJSON(t *testing.T) {
	var intent ParsedIntent
	raw := `{"date":"Saturday","location":"Seattle","interests":["dinner"],"context":""}`
	if DecodeResponse(raw, &intent) != Decoded {
		t.Fatalf("expected plain JSON to decode")
	}
	if intent.Location != "Seattle" {
		t.Fatalf("unexpected location: %q", intent.Location)
	}
}

func TestDecodeResponseStripsJSONFence(t *testing.T) {
	var intent ParsedIntent
	raw := "```json\n{\"date\":\"Saturday\",\"location\":\"Seattle\",\"interests\":[],\"context\":\"\"}\n```"
	if DecodeResponse(raw, &intent) != Decoded {
		t.Fatalf("expected fenced JSON to decode")
	}
	if intent.Date != "Saturday" {
		t.Fatalf("unexpected date: %q", intent.Date)
	}
}

func TestDecodeResponseStripsBareFence(t *testing.T) {
	var strategy SearchStrategy
	raw := "```\n{\"categories\":[\"outdoor\"],\"reasoning\":\"x\"}\n```"
	if DecodeResponse(raw, &strategy) != Decoded {
		t.Fatalf("expected bare fenced JSON to decode")
	}
	if len(strategy.Categories) != 1 || strategy.Categories[0] != "outdoor" {
		t.Fatalf("unexpected categories: %v", strategy.Categories)
	}
}

func TestDecodeResponseFenceWithSurroundingProse(t *testing.T) {
	var intent ParsedIntent
	raw := "Here is the result:\n```json\n{\"location\":\"Paris\"}\n```\nHope that helps!"
	if DecodeResponse(raw, &intent) != Decoded {
		t.Fatalf("expected fence surrounded by prose to decode")
	}
	if intent.Location != "Paris" {
		t.Fatalf("unexpected location: %q", intent.Location)
	}
}

func TestDecodeResponseShapeFailure(t *testing.T) {
	var intent ParsedIntent
	if DecodeResponse("I am sorry, I cannot help with that.", &intent) != FallbackApplied {
		t.Fatalf("expected prose response to signal fallback")
	}
	if DecodeResponse("", &intent) != FallbackApplied {
		t.Fatalf("expected empty response to signal fallback")
	}
}
