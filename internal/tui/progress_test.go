package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m tea.Model, msg tea.Msg) ProgressModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(ProgressModel)
	require.True(t, ok)
	return pm
}

func TestProgressModel_StepLifecycle(t *testing.T) {
	m := NewProgressModel("Backend Developer")

	m = update(t, m, StepStartMsg{StepIndex: 0, StepCount: 4, StepName: "create_job_description"})
	view := m.View()
	assert.Contains(t, view, "Drafting job description")
	assert.Contains(t, view, "(1/4)")
	assert.Contains(t, view, "Backend Developer")

	m = update(t, m, StepCompleteMsg{StepName: "create_job_description"})
	m = update(t, m, StepStartMsg{StepIndex: 1, StepCount: 4, StepName: "suggest_sourcing_channels"})
	view = m.View()
	assert.Contains(t, view, "✓ Drafting job description")
	assert.Contains(t, view, "Suggesting sourcing channels")
}

func TestProgressModel_StepFailure(t *testing.T) {
	m := NewProgressModel("Backend Developer")
	m = update(t, m, StepStartMsg{StepIndex: 2, StepCount: 4, StepName: "design_interview_process"})
	m = update(t, m, StepFailMsg{StepName: "design_interview_process", Error: "gateway timed out"})

	view := m.View()
	assert.Contains(t, view, "✗ Designing interview process")
	assert.Contains(t, view, "gateway timed out")
}

func TestProgressModel_RunDoneQuits(t *testing.T) {
	m := NewProgressModel("Backend Developer")
	next, cmd := m.Update(RunDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	pm := next.(ProgressModel)
	assert.True(t, pm.done)
}

func TestProgressModel_QuitKey(t *testing.T) {
	m := NewProgressModel("Backend Developer")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.(ProgressModel).View())
}

func TestStepLabel_UnknownNamePassesThrough(t *testing.T) {
	assert.Equal(t, "Drafting job description", stepLabel("create_job_description"))
	assert.Equal(t, "something_else", stepLabel("something_else"))
}
