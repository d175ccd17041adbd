// Package pipeline drives a hiring-plan session from intake through the
// fixed sequence of generation steps, enforcing the session state machine
// and recording every tool invocation along the way.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hireplan-ai/hireplan/internal/analyzer"
	"github.com/hireplan-ai/hireplan/internal/errors"
	"github.com/hireplan-ai/hireplan/internal/gateway"
	"github.com/hireplan-ai/hireplan/internal/log"
	"github.com/hireplan-ai/hireplan/internal/plan"
	"github.com/hireplan-ai/hireplan/internal/tool"
)

// DefaultStepTimeout bounds each individual gateway call during generation.
const DefaultStepTimeout = 120 * time.Second

// DefaultTemperature matches the sampling temperature used across all steps.
const DefaultTemperature = 0.7

// Orchestrator runs one hiring-plan session. It is not safe for concurrent
// use: create one orchestrator per request and discard (or Reset) it after
// the session reaches a terminal state.
type Orchestrator struct {
	analyzer    *analyzer.Analyzer
	gateway     gateway.Client
	stepTimeout time.Duration
	temperature float64
	observer    Observer
	logger      *log.Logger
	now         func() time.Time

	session Session
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStepTimeout bounds each generation step's gateway call.
func WithStepTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.stepTimeout = d }
}

// WithTemperature sets the sampling temperature passed to every step.
func WithTemperature(t float64) Option {
	return func(o *Orchestrator) { o.temperature = t }
}

// WithObserver registers a callback for progress events.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an orchestrator with a fresh session in the intake state.
func New(an *analyzer.Analyzer, gw gateway.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer:    an,
		gateway:     gw,
		stepTimeout: DefaultStepTimeout,
		temperature: DefaultTemperature,
		logger:      log.DefaultLogger(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.session = newSession(o.now())
	return o
}

// SetObserver replaces the event observer. Useful when the observer (e.g.
// a progress view) is only constructed after the clarification round.
func (o *Orchestrator) SetObserver(obs Observer) {
	o.observer = obs
}

// Session returns a snapshot of the current session.
func (o *Orchestrator) Session() Session {
	return o.session.snapshot()
}

// Reset discards the session and starts a new one in the intake state.
func (o *Orchestrator) Reset() {
	o.session = newSession(o.now())
}

// Submit runs the clarification analysis on the role description and moves
// the session either to awaiting_clarification or straight to generating.
// An empty role description is rejected and the session stays at intake.
func (o *Orchestrator) Submit(ctx context.Context, roleDescription string) (*analyzer.Result, error) {
	if o.session.State != StateIntake {
		return nil, errors.NewInvalidTransitionError(string(o.session.State), string(StateGenerating))
	}

	roleDescription = strings.TrimSpace(roleDescription)
	if roleDescription == "" {
		return nil, errors.NewEmptyRoleError()
	}

	result, err := o.analyzer.Analyze(ctx, roleDescription)
	if err != nil {
		o.setState(StateFailed)
		return nil, err
	}

	o.session.RoleDescription = roleDescription
	if result.NeedsClarification {
		o.session.Questions = result.Questions
		o.setState(StateAwaitingClarification)
	} else {
		o.setState(StateGenerating)
	}
	return result, nil
}

// ProvideAnswers attaches the caller's clarification answers and moves the
// session to generating. The answers are opaque free text; they are never
// matched against the questions.
func (o *Orchestrator) ProvideAnswers(answers string) error {
	if o.session.State != StateAwaitingClarification {
		return errors.NewInvalidTransitionError(string(o.session.State), string(StateGenerating))
	}
	answers = strings.TrimSpace(answers)
	if answers == "" {
		return errors.New(errors.ErrCodeInputEmptyAnswers, "clarification answers must not be empty").
			WithSuggestion("Answer the questions in free text, or skip the clarification round")
	}
	o.session.Answers = &answers
	o.setState(StateGenerating)
	return nil
}

// SkipClarification bypasses the clarification round. The run proceeds with
// the original role description only.
func (o *Orchestrator) SkipClarification() error {
	if o.session.State != StateAwaitingClarification {
		return errors.NewInvalidTransitionError(string(o.session.State), string(StateGenerating))
	}
	o.setState(StateGenerating)
	return nil
}

// Generate runs the four generation steps in registry order and assembles
// the plan. The run is all-or-nothing: any step failure aborts the session
// with no partial plan, leaving the invocation log as the record of how far
// the run got.
func (o *Orchestrator) Generate(ctx context.Context) (*plan.HiringPlan, error) {
	if o.session.State != StateGenerating {
		return nil, errors.NewInvalidTransitionError(string(o.session.State), string(StateComplete))
	}

	toolCtx := tool.Context{RoleDetails: o.roleDetails()}
	steps := tool.Registry()

	var summary string
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			o.setState(StateFailed)
			return nil, errors.NewStepFailedError(step.Name, err)
		}

		out, err := o.runStep(ctx, step, i, len(steps), toolCtx)
		if err != nil {
			o.setState(StateFailed)
			return nil, errors.NewStepFailedError(step.Name, err)
		}

		switch step.Name {
		case tool.StepJobDescription:
			toolCtx.JobDescription = out.Text
		case tool.StepSourcingChannels:
			toolCtx.SourcingChannels = out.Channels
		case tool.StepInterviewProcess:
			toolCtx.InterviewStages = out.Stages
		case tool.StepPlanSummary:
			summary = out.Text
		}
	}

	assembled, err := plan.Assemble(toolCtx.JobDescription, toolCtx.SourcingChannels, toolCtx.InterviewStages, summary)
	if err != nil {
		o.setState(StateFailed)
		return nil, err
	}

	o.session.Plan = assembled
	o.setState(StateComplete)
	return assembled, nil
}

// Run drives a full session in one call: analysis, an automatic answer or
// skip for the clarification round, then generation. Answers supplied up
// front are attached to the run even when the analyzer asks no questions.
func (o *Orchestrator) Run(ctx context.Context, roleDescription, answers string) (*plan.HiringPlan, error) {
	if _, err := o.Submit(ctx, roleDescription); err != nil {
		return nil, err
	}

	answers = strings.TrimSpace(answers)
	switch {
	case o.session.State == StateAwaitingClarification && answers != "":
		if err := o.ProvideAnswers(answers); err != nil {
			return nil, err
		}
	case o.session.State == StateAwaitingClarification:
		if err := o.SkipClarification(); err != nil {
			return nil, err
		}
	case answers != "":
		o.session.Answers = &answers
	}

	return o.Generate(ctx)
}

// roleDetails folds the clarification answers into the role description the
// steps see.
func (o *Orchestrator) roleDetails() string {
	if o.session.Answers == nil {
		return o.session.RoleDescription
	}
	return o.session.RoleDescription + "\n\nAdditional Details:\n" + *o.session.Answers
}

func (o *Orchestrator) runStep(ctx context.Context, step tool.Step, index, total int, toolCtx tool.Context) (*tool.Output, error) {
	inv := ToolInvocation{
		ID:          uuid.New().String(),
		Name:        step.Name,
		Description: step.Description,
		Status:      InvocationRunning,
		StartedAt:   o.now(),
	}
	o.session.Invocations = append(o.session.Invocations, inv)
	slot := len(o.session.Invocations) - 1

	o.emit(Event{Kind: EventStepStarted, Step: step.Name, StepIndex: index, StepCount: total})
	o.logger.Info("generation step started",
		"step", step.Name,
		"step_index", index+1,
		"step_count", total,
		"session_id", o.session.ID)

	stepCtx := ctx
	if o.stepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, o.stepTimeout)
		defer cancel()
	}

	out, err := o.callStep(stepCtx, step, toolCtx)
	ended := o.now()
	o.session.Invocations[slot].EndedAt = ended

	if err != nil {
		o.session.Invocations[slot].Status = InvocationFailed
		o.session.Invocations[slot].Err = err.Error()
		o.emit(Event{Kind: EventStepFailed, Step: step.Name, StepIndex: index, StepCount: total, Err: err})
		o.logger.WithError(err).Error("generation step failed",
			"step", step.Name,
			"duration_ms", ended.Sub(inv.StartedAt).Milliseconds(),
			"session_id", o.session.ID)
		return nil, err
	}

	o.session.Invocations[slot].Status = InvocationCompleted
	o.emit(Event{Kind: EventStepCompleted, Step: step.Name, StepIndex: index, StepCount: total})
	o.logger.Info("generation step completed",
		"step", step.Name,
		"duration_ms", ended.Sub(inv.StartedAt).Milliseconds(),
		"session_id", o.session.ID)
	return out, nil
}

func (o *Orchestrator) callStep(ctx context.Context, step tool.Step, toolCtx tool.Context) (*tool.Output, error) {
	resp, err := o.gateway.Generate(ctx, &gateway.GenerateRequest{
		Prompt:       step.Prompt(toolCtx),
		SystemPrompt: tool.SystemPrompt,
		Temperature:  o.temperature,
	})
	if err != nil {
		return nil, err
	}
	return step.ParseOutput(resp.Content)
}

func (o *Orchestrator) setState(next State) {
	if o.session.State == next {
		return
	}
	prev := o.session.State
	o.session.State = next
	o.logger.Debug("session state changed",
		"session_id", o.session.ID,
		"from", string(prev),
		"to", string(next))
	o.emit(Event{Kind: EventStateChange, State: next})
}

func (o *Orchestrator) emit(ev Event) {
	if o.observer == nil {
		return
	}
	ev.SessionID = o.session.ID
	ev.Timestamp = o.now()
	o.observer(ev)
}
