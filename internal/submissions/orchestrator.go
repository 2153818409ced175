package submissions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/metrics"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/telemetry"
)

// Analyzer produces the AI report for a validated form.
type Analyzer interface {
	Analyze(ctx context.Context, form intake.FormData, current, final []intake.EncodedImage) (analysis.AIAnalysis, error)
}

// Persister stores the images and the record of a successful analysis.
type Persister interface {
	SaveRecord(ctx context.Context, form intake.FormData, result analysis.AIAnalysis) (int64, error)
}

// Outcome is the end state of one submission.
type Outcome struct {
	ID       string
	State    State
	FailedAt State
	RecordID int64
	Errors   intake.ValidationErrors
	Message  string
	Err      error
	Trace    []State
}

// Succeeded reports whether the submission reached StateSucceeded.
func (o Outcome) Succeeded() bool { return o.State == StateSucceeded }

// LastTransition renders the final step of Trace.
func (o Outcome) LastTransition() string {
	if len(o.Trace) < 2 {
		return ""
	}
	return Transition(o.Trace[len(o.Trace)-2], o.Trace[len(o.Trace)-1])
}

// Orchestrator runs validate, encode, analyze and persist in order. Every
// failure is terminal; nothing is retried.
type Orchestrator struct {
	Analyzer  Analyzer
	Persister Persister
	NewID     func() string
}

type run struct {
	ctx     context.Context
	outcome Outcome
	start   time.Time
}

func (r *run) to(next State) {
	prev := r.outcome.State
	r.outcome.State = next
	r.outcome.Trace = append(r.outcome.Trace, next)
	telemetry.Info("submission.status", map[string]any{
		"request_id":        telemetry.RequestIDFromContext(r.ctx),
		"submission_id":     r.outcome.ID,
		"status_transition": Transition(prev, next),
	})
}

func (r *run) fail(err error) Outcome {
	stage := r.outcome.State
	r.outcome.FailedAt = stage
	r.outcome.Err = err
	r.outcome.Message = UserMessage(err)
	r.to(StateFailed)

	telemetry.Error("submission.failed", map[string]any{
		"request_id":    telemetry.RequestIDFromContext(r.ctx),
		"submission_id": r.outcome.ID,
		"stage":         string(stage),
		"error":         err,
		"message":       r.outcome.Message,
	})
	metrics.IncSubmissionFailed(string(stage))
	metrics.ObserveSubmissionDurationMs(float64(time.Since(r.start).Milliseconds()))
	return r.outcome
}

// Submit processes one snapshot of the form.
func (o *Orchestrator) Submit(ctx context.Context, form intake.FormData) Outcome {
	newID := o.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	id := newID()
	r := &run{
		ctx:     ctx,
		outcome: Outcome{ID: id, State: StateIdle, Trace: []State{StateIdle}},
		start:   time.Now(),
	}
	metrics.IncSubmissionStarted()

	r.to(StateValidating)
	if errs := intake.Validate(form); !errs.Empty() {
		r.outcome.Errors = errs
		return r.fail(errs)
	}

	r.to(StateEncoding)
	current, final, err := intake.EncodeAll(ctx, form)
	if err != nil {
		return r.fail(err)
	}

	r.to(StateAnalyzing)
	result, err := o.Analyzer.Analyze(ctx, form, current, final)
	if err != nil {
		return r.fail(err)
	}

	r.to(StatePersisting)
	recordID, err := o.Persister.SaveRecord(ctx, form, result)
	if err != nil {
		return r.fail(err)
	}
	r.outcome.RecordID = recordID

	r.to(StateSucceeded)
	metrics.IncSubmissionSucceeded()
	metrics.ObserveSubmissionDurationMs(float64(time.Since(r.start).Milliseconds()))
	return r.outcome
}
