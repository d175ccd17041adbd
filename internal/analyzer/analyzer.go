// Package analyzer decides whether a role description needs a clarification
// round before plan generation, using the language-model gateway for the
// judgment itself.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hireplan-ai/hireplan/internal/errors"
	"github.com/hireplan-ai/hireplan/internal/gateway"
	"github.com/hireplan-ai/hireplan/internal/log"
)

// Sentinels the analysis prompt instructs the model to lead with.
const (
	needClarificationMarker = "CLARIFICATION_NEEDED:"
	noClarificationMarker   = "CLARIFICATION_NOT_NEEDED:"
)

// Result is the materialized analysis outcome. NeedsClarification is true
// only when Questions is non-empty.
type Result struct {
	NeedsClarification bool     `json:"needs_clarification"`
	Questions          []string `json:"questions"`
}

// Analyzer performs the clarification analysis. Its only side effect is the
// single outbound gateway call per Analyze.
type Analyzer struct {
	gateway gateway.Client
	timeout time.Duration
	logger  *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTimeout bounds the gateway call. Zero means the caller's context governs.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// New creates an Analyzer bound to a gateway client.
func New(gw gateway.Client, opts ...Option) *Analyzer {
	a := &Analyzer{
		gateway: gw,
		logger:  log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze inspects a role description and returns the clarification
// decision. An empty description is rejected before any gateway call.
func (a *Analyzer) Analyze(ctx context.Context, roleDescription string) (*Result, error) {
	roleDescription = strings.TrimSpace(roleDescription)
	if roleDescription == "" {
		return nil, errors.NewEmptyRoleError()
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := a.gateway.Generate(ctx, &gateway.GenerateRequest{
		Prompt:       analysisPrompt(roleDescription),
		SystemPrompt: "You are an expert HR consultant.",
	})
	if err != nil {
		return nil, err
	}

	result := parseAnalysis(resp.Content)

	// A "needs clarification" verdict with no parseable questions is a
	// broken collaborator response; normalize it rather than block the
	// caller on questions that do not exist.
	if result.NeedsClarification && len(result.Questions) == 0 {
		a.logger.Warn("analysis verdict had no questions, treating as complete",
			"gateway", a.gateway.Name())
		result.NeedsClarification = false
	}

	return result, nil
}

func analysisPrompt(roleDescription string) string {
	return fmt.Sprintf(`You are an expert HR consultant. Based on the initial role description provided,
identify if crucial details are missing for creating a comprehensive hiring plan.
Missing details could include: specific responsibilities beyond general duties, required years of experience,
team structure (e.g., reporting line, team size), key success metrics for the role, or specific technologies.

If details are missing, formulate 2-3 targeted questions to ask the HR professional to get these details.
If the description seems reasonably complete for initial planning, state that and suggest moving to drafting the Job Description.

Output format:
- If questions are needed: Start your response with "CLARIFICATION_NEEDED:" followed by your questions.
- If no questions are needed: Start your response with "CLARIFICATION_NOT_NEEDED:" followed by your statement.

Role description: %s`, roleDescription)
}

// parseAnalysis extracts the verdict and questions from the model reply.
// A reply without the needs-clarification sentinel is treated as complete.
func parseAnalysis(response string) *Result {
	result := &Result{Questions: []string{}}

	idx := strings.Index(response, needClarificationMarker)
	if idx < 0 {
		return result
	}

	result.NeedsClarification = true

	questionsText := response[idx+len(needClarificationMarker):]
	for _, line := range strings.Split(questionsText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "?") {
			continue
		}
		question := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-•* )"))
		if question != "" {
			result.Questions = append(result.Questions, question)
		}
	}

	return result
}
