// Package tool defines the fixed, ordered catalog of generation steps the
// pipeline runs to produce a hiring plan.
//
// The order is a correctness requirement, not a convenience: sourcing and
// interview prompts reference the generated job description, and the summary
// prompt references all three prior outputs. Appending a fifth step changes
// pipeline semantics and is a breaking contract change for downstream
// consumers.
package tool

import (
	"fmt"
	"strings"

	"github.com/hireplan-ai/hireplan/internal/errors"
	"github.com/hireplan-ai/hireplan/internal/plan"
)

// Step names, stable identifiers exposed via GET /tools.
const (
	StepJobDescription   = "create_job_description"
	StepSourcingChannels = "suggest_sourcing_channels"
	StepInterviewProcess = "design_interview_process"
	StepPlanSummary      = "create_hiring_plan_summary"
)

// Context carries the inputs available to a step: the role details and the
// accumulated outputs of every previously completed step in this run.
type Context struct {
	RoleDetails      string
	JobDescription   string
	SourcingChannels []string
	InterviewStages  []plan.InterviewStage
}

// Output is a step's parsed result. Text is always set; Channels and Stages
// are populated only by the steps that produce them.
type Output struct {
	Text     string
	Channels []string
	Stages   []plan.InterviewStage
}

// Step is one generation capability: a stable name, a human-readable
// description, a prompt builder, and a parser for the gateway's reply.
type Step struct {
	Name        string
	Description string

	buildPrompt func(Context) string
	parse       func(string) (*Output, error)
}

// Prompt builds the gateway prompt for this step from the run context.
func (s Step) Prompt(ctx Context) string {
	return s.buildPrompt(ctx)
}

// ParseOutput validates and parses the raw gateway reply.
func (s Step) ParseOutput(raw string) (*Output, error) {
	out, err := s.parse(raw)
	if err != nil {
		return nil, err
	}
	if out.Text == "" {
		return nil, errors.NewEmptyStepOutputError(s.Name)
	}
	return out, nil
}

// steps is the registry. Read-only at runtime.
var steps = []Step{
	{
		Name:        StepJobDescription,
		Description: "Create a comprehensive job description based on role details.",
		buildPrompt: jobDescriptionPrompt,
		parse:       parseText,
	},
	{
		Name:        StepSourcingChannels,
		Description: "Suggest 3-5 diverse and effective sourcing channels for finding suitable candidates.",
		buildPrompt: sourcingChannelsPrompt,
		parse:       parseSourcingChannels,
	},
	{
		Name:        StepInterviewProcess,
		Description: "Design a multi-stage interview process suitable for the role.",
		buildPrompt: interviewProcessPrompt,
		parse:       parseInterviewProcess,
	},
	{
		Name:        StepPlanSummary,
		Description: "Create a comprehensive summary of the entire hiring plan.",
		buildPrompt: planSummaryPrompt,
		parse:       parseText,
	},
}

// Registry returns the generation steps in their fixed execution order.
func Registry() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Lookup finds a step by name.
func Lookup(name string) (Step, error) {
	for _, s := range steps {
		if s.Name == name {
			return s, nil
		}
	}
	return Step{}, fmt.Errorf("unknown tool %q", name)
}

func parseText(raw string) (*Output, error) {
	return &Output{Text: strings.TrimSpace(raw)}, nil
}
