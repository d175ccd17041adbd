package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hireplan-ai/hireplan/internal/pipeline"
)

// Messages bridged from pipeline events into the bubbletea loop.
type (
	// StepStartMsg marks a generation step beginning.
	StepStartMsg struct {
		StepIndex int
		StepCount int
		StepName  string
	}

	// StepCompleteMsg marks a generation step finishing.
	StepCompleteMsg struct {
		StepName string
	}

	// StepFailMsg marks a generation step failing.
	StepFailMsg struct {
		StepName string
		Error    string
	}

	// RunDoneMsg ends the progress view; Error is empty on success.
	RunDoneMsg struct {
		Error string
	}
)

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// stepLabels maps tool names to short human-readable progress labels.
var stepLabels = map[string]string{
	"create_job_description":     "Drafting job description",
	"suggest_sourcing_channels":  "Suggesting sourcing channels",
	"design_interview_process":   "Designing interview process",
	"create_hiring_plan_summary": "Summarizing the hiring plan",
}

// ProgressModel is the bubbletea model rendering live pipeline progress.
type ProgressModel struct {
	role    string
	spinner spinner.Model
	styles  Styles

	stepIndex int
	stepCount int
	current   string
	completed []string
	failed    string
	lastError string
	done      bool
	quitting  bool
	width     int
}

// NewProgressModel creates the progress view for one plan run.
func NewProgressModel(role string) ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return ProgressModel{
		role:    role,
		spinner: sp,
		styles:  DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case StepStartMsg:
		m.stepIndex = msg.StepIndex
		m.stepCount = msg.StepCount
		m.current = msg.StepName
		return m, nil

	case StepCompleteMsg:
		m.completed = append(m.completed, msg.StepName)
		m.current = ""
		return m, nil

	case StepFailMsg:
		m.failed = msg.StepName
		m.lastError = msg.Error
		m.current = ""
		return m, nil

	case RunDoneMsg:
		m.done = true
		if msg.Error != "" {
			m.lastError = msg.Error
		}
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("hireplan"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Role: ") + m.styles.Subtitle.Render(m.role))
	b.WriteString("\n\n")

	for _, name := range m.completed {
		b.WriteString(m.styles.Success.Render("✓ ") + stepLabel(name))
		b.WriteString("\n")
	}

	if m.failed != "" {
		b.WriteString(m.styles.Error.Render("✗ ") + stepLabel(m.failed))
		b.WriteString("\n")
	}

	if m.current != "" {
		b.WriteString(fmt.Sprintf("%s %s (%d/%d)",
			m.spinner.View(),
			m.styles.Status.Render(stepLabel(m.current)),
			m.stepIndex+1,
			m.stepCount))
		b.WriteString("\n")
	}

	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: ") + m.lastError)
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(m.styles.Help.Render("ctrl+c to cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

func stepLabel(name string) string {
	if label, ok := stepLabels[name]; ok {
		return label
	}
	return name
}

// Runner bridges pipeline events into a running bubbletea program.
type Runner struct {
	program *tea.Program
}

// NewRunner starts the progress view on its own goroutine and returns once
// the program is constructed. Call Observer to wire the pipeline, Finish
// when the run ends, and Wait to block until the view exits.
func NewRunner(role string) *Runner {
	return &Runner{
		program: tea.NewProgram(NewProgressModel(role)),
	}
}

// Start begins the TUI event loop. The returned channel receives the
// program's terminal error once it exits.
func (r *Runner) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		_, err := r.program.Run()
		errCh <- err
	}()
	return errCh
}

// Observer returns a pipeline observer that forwards step events to the view.
func (r *Runner) Observer() pipeline.Observer {
	return func(ev pipeline.Event) {
		switch ev.Kind {
		case pipeline.EventStepStarted:
			r.program.Send(StepStartMsg{
				StepIndex: ev.StepIndex,
				StepCount: ev.StepCount,
				StepName:  ev.Step,
			})
		case pipeline.EventStepCompleted:
			r.program.Send(StepCompleteMsg{StepName: ev.Step})
		case pipeline.EventStepFailed:
			msg := StepFailMsg{StepName: ev.Step}
			if ev.Err != nil {
				msg.Error = ev.Err.Error()
			}
			r.program.Send(msg)
		}
	}
}

// Finish tells the view the run ended and lets it exit.
func (r *Runner) Finish(err error) {
	msg := RunDoneMsg{}
	if err != nil {
		msg.Error = err.Error()
	}
	r.program.Send(msg)
}
