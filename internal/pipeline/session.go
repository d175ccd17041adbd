package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/hireplan-ai/hireplan/internal/plan"
)

// State is a session's position in the plan-generation lifecycle.
type State string

const (
	// StateIntake is the initial state; the session is waiting for a role
	// description to be submitted.
	StateIntake State = "intake"

	// StateAwaitingClarification means the analyzer produced questions and
	// the session is waiting for answers (or an explicit skip).
	StateAwaitingClarification State = "awaiting_clarification"

	// StateGenerating means the session is ready to run (or is running)
	// the generation steps.
	StateGenerating State = "generating"

	// StateComplete is terminal: a full plan was assembled.
	StateComplete State = "complete"

	// StateFailed is terminal: the run was aborted and no plan exists.
	StateFailed State = "failed"
)

// InvocationStatus tracks one tool invocation's progress.
type InvocationStatus string

const (
	InvocationPending   InvocationStatus = "pending"
	InvocationRunning   InvocationStatus = "running"
	InvocationCompleted InvocationStatus = "completed"
	InvocationFailed    InvocationStatus = "failed"
)

// ToolInvocation is one entry in a session's append-only invocation log.
// Entries always appear in registry order: a step's invocation never starts
// before the prior step's invocation completes.
type ToolInvocation struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Status      InvocationStatus `json:"status"`
	StartedAt   time.Time        `json:"started_at"`
	EndedAt     time.Time        `json:"ended_at,omitempty"`
	Err         string           `json:"error,omitempty"`
}

// Session owns the state for one plan-generation request. Sessions are
// created at intake, live for the request/response lifecycle, and are never
// shared between callers.
type Session struct {
	ID              string           `json:"id"`
	State           State            `json:"state"`
	RoleDescription string           `json:"role_description"`
	Questions       []string         `json:"questions,omitempty"`
	Answers         *string          `json:"answers,omitempty"`
	Invocations     []ToolInvocation `json:"invocations"`
	Plan            *plan.HiringPlan `json:"plan,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func newSession(now time.Time) Session {
	return Session{
		ID:          uuid.New().String(),
		State:       StateIntake,
		Invocations: []ToolInvocation{},
		CreatedAt:   now,
	}
}

// snapshot returns a deep-enough copy for callers: the invocation log and
// question list are copied so later appends cannot alias.
func (s Session) snapshot() Session {
	out := s
	out.Invocations = make([]ToolInvocation, len(s.Invocations))
	copy(out.Invocations, s.Invocations)
	if s.Questions != nil {
		out.Questions = make([]string, len(s.Questions))
		copy(out.Questions, s.Questions)
	}
	return out
}

// Terminal reports whether the state accepts no further transitions except reset.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}
