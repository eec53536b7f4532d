package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/weekender/internal/budget"
	"github.com/mohammad-safakhou/weekender/internal/telemetry"
)

// RunOptions carries per-run knobs. The zero value is a plain run.
type RunOptions struct {
	// GroupSize is the number of people, used by the budget estimate.
	GroupSize int
	// IncludeBudget appends a deterministic cost estimate to the
	// itinerary.
	IncludeBudget bool
	// Events, when non-nil, receives stage progress notifications in
	// fixed stage order. Sends never block; slow consumers miss events
	// rather than stalling the run.
	Events chan<- StageEvent
}

// Orchestrator invokes the five stages in fixed order, threading each
// stage's output into the next. Every run owns an independent copy of
// its per-stage state; nothing is shared across concurrent runs except
// the read-only configuration and clients.
type Orchestrator struct {
	extractor  *Extractor
	strategist *Strategist
	discoverer *Discoverer
	curator    *Curator
	summarizer *Summarizer
	logger     *log.Logger
	telemetry  *telemetry.Telemetry
}

// NewOrchestrator wires the stages to a shared completion provider and
// optional enricher.
func NewOrchestrator(llm CompletionProvider, enricher Enricher, logger *log.Logger, tele *telemetry.Telemetry) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	}
	return &Orchestrator{
		extractor:  NewExtractor(llm, nil, tele),
		strategist: NewStrategist(llm, nil, tele),
		discoverer: NewDiscoverer(llm, enricher, nil, tele),
		curator:    NewCurator(llm, nil, tele),
		summarizer: NewSummarizer(llm, nil, tele),
		logger:     logger,
		telemetry:  tele,
	}
}

// Run executes one pipeline run for the given request text. Stages
// recover locally via their deterministic fallbacks; only unanticipated
// failures (panics, context cancellation) terminate the run in the
// error state, tagged with the stage that was active.
func (o *Orchestrator) Run(ctx context.Context, requestText string, opts RunOptions) (RunResult, error) {
	start := time.Now()
	result := RunResult{
		ID: uuid.New().String(),
		Request: Request{
			ID:        uuid.New().String(),
			Text:      requestText,
			GroupSize: opts.GroupSize,
			CreatedAt: start,
		},
		StartedAt: start,
	}

	for _, name := range StageOrder {
		o.emit(&result, opts, StageEvent{Name: name, Status: StatusPending})
	}

	o.logger.Printf("starting run %s", result.ID)

	runStage := func(name string, fn func()) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		o.emit(&result, opts, StageEvent{Name: name, Status: StatusActive})
		stageStart := time.Now()
		err := guard(fn)
		o.telemetry.RecordStage(name, time.Since(stageStart))
		if err != nil {
			o.emit(&result, opts, StageEvent{Name: name, Status: StatusError})
			return err
		}
		o.emit(&result, opts, StageEvent{Name: name, Status: StatusCompleted})
		return nil
	}

	steps := []struct {
		name string
		fn   func()
	}{
		{StageExtract, func() { result.Intent = o.extractor.Extract(ctx, result.Request) }},
		{StagePlan, func() { result.Strategy = o.strategist.Plan(ctx, result.Intent) }},
		{StageDiscover, func() { result.Candidates = o.discoverer.Discover(ctx, result.Intent, result.Strategy) }},
		{StageCurate, func() { result.Curation = o.curator.Curate(ctx, result.Candidates, result.Intent) }},
		{StageSummarize, func() { result.Itinerary = o.summarizer.Summarize(ctx, result.Curation, result.Intent) }},
	}

	for _, step := range steps {
		if err := runStage(step.name, step.fn); err != nil {
			result.State = StateError
			result.CompletedAt = time.Now()
			result.Duration = result.CompletedAt.Sub(start)
			o.telemetry.RecordRun(StateError, result.Duration)
			o.logger.Printf("run %s failed at stage %s: %v", result.ID, step.name, err)
			// Partial stage outputs are not persisted or returned.
			return RunResult{}, fmt.Errorf("run failed at stage %s: %w", step.name, err)
		}
	}

	if opts.IncludeBudget && len(result.Curation.Selected) > 0 {
		result.Itinerary += "\n\n" + o.budgetSummary(result)
	}

	result.State = StateDone
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(start)
	o.telemetry.RecordRun(StateDone, result.Duration)
	o.logger.Printf("run %s completed in %s", result.ID, result.Duration)
	return result, nil
}

// budgetSummary renders the deterministic cost estimate for the curated
// selection.
func (o *Orchestrator) budgetSummary(result RunResult) string {
	groupSize := result.Request.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}
	items := make([]budget.Activity, 0, len(result.Curation.Selected))
	for _, a := range result.Curation.Selected {
		items = append(items, budget.Activity{
			Name:    a.Name,
			Type:    string(a.Type),
			Rating:  a.Rating,
			Details: a.Details,
		})
	}
	analysis := budget.Analyze(items, groupSize, result.Intent.Location)
	return budget.FormatSummary(analysis)
}

// emit appends the event to the run trail and forwards it to the
// observer channel without blocking.
func (o *Orchestrator) emit(result *RunResult, opts RunOptions, ev StageEvent) {
	result.Events = append(result.Events, ev)
	if opts.Events == nil {
		return
	}
	select {
	case opts.Events <- ev:
	default:
	}
}

// guard converts a panic inside a stage into an error at the run
// boundary.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panic: %v", r)
		}
	}()
	fn()
	return nil
}
