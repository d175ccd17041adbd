package pipeline

import "time"

// EventKind identifies the kind of progress event an observer receives.
type EventKind string

const (
	// EventStateChange fires whenever the session moves between states.
	EventStateChange EventKind = "state_change"
	// EventStepStarted fires when a generation step's invocation begins.
	EventStepStarted EventKind = "step_started"
	// EventStepCompleted fires when a step's invocation completes.
	EventStepCompleted EventKind = "step_completed"
	// EventStepFailed fires when a step's invocation fails; a state change
	// to StateFailed follows.
	EventStepFailed EventKind = "step_failed"
)

// Event is a progress notification delivered synchronously to the observer.
// Step, StepIndex and StepCount are set only for step events; State is set
// only for state changes.
type Event struct {
	Kind      EventKind
	SessionID string
	State     State
	Step      string
	StepIndex int
	StepCount int
	Err       error
	Timestamp time.Time
}

// Observer receives pipeline events. Callbacks run on the orchestrator's
// goroutine and must return promptly.
type Observer func(Event)
