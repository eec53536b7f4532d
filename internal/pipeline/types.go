package pipeline

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/weekender/tools/venue"
)

// Request represents a raw user utterance. It is created once per
// pipeline run and never mutated.
type Request struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	GroupSize int       `json:"group_size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ParsedIntent is the structured extraction result produced by the
// extract stage and consumed by every later stage.
type ParsedIntent struct {
	Date      string   `json:"date"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
	Context   string   `json:"context"`
}

// SearchStrategy is the category selection decision produced by the
// plan stage.
type SearchStrategy struct {
	Categories []string `json:"categories"`
	Priority   string   `json:"priority,omitempty"`
	Reasoning  string   `json:"reasoning"`
}

// Allowed strategy categories.
const (
	CategoryRestaurants = "restaurants"
	CategoryMovies      = "movies"
	CategoryEvents      = "events"
	CategoryOutdoor     = "outdoor"
)

// ActivityCandidate is one discovered option. Rating is 3.5-5.0 by
// convention, not enforced. Address, phone and website are present only
// when enrichment found them.
type ActivityCandidate struct {
	Name    string     `json:"name"`
	Type    venue.Kind `json:"type"`
	Rating  float64    `json:"rating"`
	Details string     `json:"details"`
	Reason  string     `json:"reason,omitempty"`
	Address string     `json:"address,omitempty"`
	Phone   string     `json:"phone,omitempty"`
	Website string     `json:"website,omitempty"`
}

// CurationResult is the bounded final selection with rationale.
type CurationResult struct {
	Selected      []ActivityCandidate `json:"selected"`
	CurationNotes string              `json:"curation_notes"`
}

// StageStatus is the progress state of a single stage within a run.
type StageStatus string

const (
	StatusPending   StageStatus = "pending"
	StatusActive    StageStatus = "active"
	StatusCompleted StageStatus = "completed"
	StatusError     StageStatus = "error"
)

// Stage names in fixed execution order.
const (
	StageExtract   = "extract"
	StagePlan      = "plan"
	StageDiscover  = "discover"
	StageCurate    = "curate"
	StageSummarize = "summarize"
)

// StageOrder is the fixed five-stage sequence of a run.
var StageOrder = []string{StageExtract, StagePlan, StageDiscover, StageCurate, StageSummarize}

// StageEvent is one progress notification emitted on the run's
// side channel.
type StageEvent struct {
	Name   string      `json:"name"`
	Status StageStatus `json:"status"`
}

// Run states. Done and Error are terminal.
const (
	StateDone  = "done"
	StateError = "error"
)

// RunResult is the complete outcome of one pipeline run.
type RunResult struct {
	ID          string              `json:"id"`
	Request     Request             `json:"request"`
	Intent      ParsedIntent        `json:"intent"`
	Strategy    SearchStrategy      `json:"strategy"`
	Candidates  []ActivityCandidate `json:"candidates"`
	Curation    CurationResult      `json:"curation"`
	Itinerary   string              `json:"itinerary"`
	State       string              `json:"state"`
	Events      []StageEvent        `json:"events"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt time.Time           `json:"completed_at"`
	Duration    time.Duration       `json:"duration"`
}

// CompletionProvider is the reasoning-service boundary as seen by the
// stages: one prompt in, one raw text response out.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Enricher resolves best-effort venue details for a discovered
// candidate. Implementations must never be relied on for correctness;
// absent fields are simply omitted.
type Enricher interface {
	Lookup(ctx context.Context, name, location string, kind venue.Kind) (venue.Details, error)
}
