package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireplan-ai/hireplan/internal/gateway"
	"github.com/hireplan-ai/hireplan/internal/gateway/gatewaytest"
)

func TestAnalyze_EmptyRole(t *testing.T) {
	a := New(gatewaytest.NewSequence("unused"))

	for _, role := range []string{"", "   ", "\n\t"} {
		_, err := a.Analyze(context.Background(), role)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INPUT-001")
	}
}

func TestAnalyze_NeedsClarification(t *testing.T) {
	stub := gatewaytest.NewSequence(`CLARIFICATION_NEEDED:
1. How many years of experience are required?
2. What is the team size and reporting line?
- What are the key success metrics?`)
	a := New(stub)

	result, err := a.Analyze(context.Background(), "Backend developer")
	require.NoError(t, err)

	assert.True(t, result.NeedsClarification)
	assert.Equal(t, []string{
		"How many years of experience are required?",
		"What is the team size and reporting line?",
		"What are the key success metrics?",
	}, result.Questions)
}

func TestAnalyze_NoClarificationNeeded(t *testing.T) {
	stub := gatewaytest.NewSequence(
		"CLARIFICATION_NOT_NEEDED: The description is complete; proceed to drafting the Job Description.")
	a := New(stub)

	result, err := a.Analyze(context.Background(),
		"Senior Backend Developer, building APIs, leading a small team")
	require.NoError(t, err)

	assert.False(t, result.NeedsClarification)
	assert.Empty(t, result.Questions)
	assert.NotNil(t, result.Questions, "questions must serialize as [], not null")
}

func TestAnalyze_MissingSentinelTreatedAsComplete(t *testing.T) {
	stub := gatewaytest.NewSequence("The role looks fine to me.")
	a := New(stub)

	result, err := a.Analyze(context.Background(), "Backend developer")
	require.NoError(t, err)
	assert.False(t, result.NeedsClarification)
}

func TestAnalyze_VerdictWithoutQuestionsNormalized(t *testing.T) {
	// The collaborator claims clarification is needed but provides nothing
	// parseable as a question.
	stub := gatewaytest.NewSequence("CLARIFICATION_NEEDED:\nPlease provide more details.")
	a := New(stub)

	result, err := a.Analyze(context.Background(), "Backend developer")
	require.NoError(t, err)

	assert.False(t, result.NeedsClarification,
		"needs_clarification must never be true with zero questions")
	assert.Empty(t, result.Questions)
}

func TestAnalyze_GatewayFailurePropagates(t *testing.T) {
	stub := gatewaytest.New(func(int, *gateway.GenerateRequest) (string, error) {
		return "", fmt.Errorf("connection refused")
	})
	a := New(stub)

	_, err := a.Analyze(context.Background(), "Backend developer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAnalyze_SingleGatewayCall(t *testing.T) {
	stub := gatewaytest.NewSequence("CLARIFICATION_NOT_NEEDED: complete")
	a := New(stub)

	_, err := a.Analyze(context.Background(), "Backend developer")
	require.NoError(t, err)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Backend developer")
	assert.Contains(t, calls[0].Prompt, "CLARIFICATION_NEEDED:")
}

func TestParseAnalysis_QuestionMarkersStripped(t *testing.T) {
	result := parseAnalysis("CLARIFICATION_NEEDED:\n• Which technologies are required?")
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "Which technologies are required?", result.Questions[0])
}
