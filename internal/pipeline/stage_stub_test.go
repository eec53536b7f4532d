package pipeline

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/weekender/tools/venue"
)

// fakeLLM scripts the completion provider for stage tests. A nil fn
// simulates a transport failure.
type fakeLLM struct {
	fn    func(prompt string) (string, error)
	calls int
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	if f.fn == nil {
		return "", errors.New("service unavailable")
	}
	return f.fn(prompt)
}

func (f *fakeLLM) Model() string { return "fake" }

// fakeEnricher records lookups and serves canned details.
type fakeEnricher struct {
	details venue.Details
	err     error
	looked  []string
}

func (f *fakeEnricher) Lookup(_ context.Context, name, _ string, _ venue.Kind) (venue.Details, error) {
	f.looked = append(f.looked, name)
	return f.details, f.err
}
