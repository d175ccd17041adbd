package tool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireplan-ai/hireplan/internal/plan"
)

func TestRegistry_FixedOrder(t *testing.T) {
	steps := Registry()
	require.Len(t, steps, 4)

	want := []string{
		StepJobDescription,
		StepSourcingChannels,
		StepInterviewProcess,
		StepPlanSummary,
	}
	for i, step := range steps {
		assert.Equal(t, want[i], step.Name)
		assert.NotEmpty(t, step.Description)
	}
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	steps := Registry()
	steps[0].Name = "tampered"
	assert.Equal(t, StepJobDescription, Registry()[0].Name)
}

func TestLookup(t *testing.T) {
	step, err := Lookup(StepInterviewProcess)
	require.NoError(t, err)
	assert.Equal(t, StepInterviewProcess, step.Name)

	_, err = Lookup("nonexistent")
	require.Error(t, err)
}

func TestPrompts_ReferencePriorOutputs(t *testing.T) {
	ctx := Context{
		RoleDetails:      "Senior Backend Developer, building APIs",
		JobDescription:   strings.Repeat("An engaging job description. ", 20),
		SourcingChannels: []string{"LinkedIn", "Wellfound"},
		InterviewStages: []plan.InterviewStage{
			{StageName: "Phone Screen", Purpose: "Basics", Questions: []string{"Why us?"}},
		},
	}

	jd, err := Lookup(StepJobDescription)
	require.NoError(t, err)
	assert.Contains(t, jd.Prompt(ctx), ctx.RoleDetails)

	sourcing, err := Lookup(StepSourcingChannels)
	require.NoError(t, err)
	sourcingPrompt := sourcing.Prompt(ctx)
	assert.Contains(t, sourcingPrompt, ctx.RoleDetails)
	assert.Contains(t, sourcingPrompt, ctx.JobDescription[:jobDescriptionExcerptLen])
	assert.Contains(t, sourcingPrompt, "...", "long job descriptions are excerpted")

	interview, err := Lookup(StepInterviewProcess)
	require.NoError(t, err)
	assert.Contains(t, interview.Prompt(ctx), "STAGE NAME:")

	summary, err := Lookup(StepPlanSummary)
	require.NoError(t, err)
	summaryPrompt := summary.Prompt(ctx)
	assert.Contains(t, summaryPrompt, "LinkedIn")
	assert.Contains(t, summaryPrompt, "Phone Screen")
	assert.Contains(t, summaryPrompt, "Why us?")
}

func TestSourcingPrompt_ShortJobDescriptionNotExcerpted(t *testing.T) {
	ctx := Context{RoleDetails: "role", JobDescription: "short jd"}
	step, err := Lookup(StepSourcingChannels)
	require.NoError(t, err)
	assert.Contains(t, step.Prompt(ctx), "short jd")
}

func TestParseOutput_EmptyIsContractViolation(t *testing.T) {
	for _, step := range Registry() {
		_, err := step.ParseOutput("")
		require.Error(t, err, step.Name)
		assert.Contains(t, err.Error(), "CONTRACT-002")
	}
}
