package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Input errors (INPUT-001 to INPUT-099): rejected before any gateway call
	ErrCodeInputEmptyRole    ErrorCode = "INPUT-001"
	ErrCodeInputEmptyAnswers ErrorCode = "INPUT-002"

	// Gateway errors (GATEWAY-001 to GATEWAY-099): the language-model
	// collaborator is unreachable or returned an error
	ErrCodeGatewayRequest ErrorCode = "GATEWAY-001"
	ErrCodeGatewayAPI     ErrorCode = "GATEWAY-002"
	ErrCodeGatewayTimeout ErrorCode = "GATEWAY-003"

	// Contract errors (CONTRACT-001 to CONTRACT-099): the collaborator's
	// response does not match the expected shape for a step
	ErrCodeContractAnalysis     ErrorCode = "CONTRACT-001"
	ErrCodeContractEmptyOutput  ErrorCode = "CONTRACT-002"
	ErrCodeContractUnparseable  ErrorCode = "CONTRACT-003"
	ErrCodeContractPlanShape    ErrorCode = "CONTRACT-004"

	// Pipeline errors (PIPELINE-001 to PIPELINE-099)
	ErrCodePipelineStepFailed        ErrorCode = "PIPELINE-001"
	ErrCodePipelineInvalidTransition ErrorCode = "PIPELINE-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound  ErrorCode = "IO-001"
	ErrCodeFileUnmarshal ErrorCode = "IO-002"
)

// HirePlanError represents an enhanced error with code, suggestions, and the
// failing pipeline step (when applicable)
type HirePlanError struct {
	Code        ErrorCode
	Message     string
	Step        string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *HirePlanError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Step != "" {
		b.WriteString(fmt.Sprintf(" (step: %s)", e.Step))
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *HirePlanError) Unwrap() error {
	return e.Cause
}

// New creates a new HirePlanError
func New(code ErrorCode, message string) *HirePlanError {
	return &HirePlanError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new HirePlanError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *HirePlanError {
	return &HirePlanError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithStep records the pipeline step the error occurred in
func (e *HirePlanError) WithStep(step string) *HirePlanError {
	e.Step = step
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *HirePlanError) WithSuggestion(suggestion string) *HirePlanError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *HirePlanError) WithSuggestions(suggestions ...string) *HirePlanError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Category returns the code prefix ("INPUT", "GATEWAY", "CONTRACT", ...),
// which is the stable error kind surfaced to callers.
func (e *HirePlanError) Category() string {
	code := string(e.Code)
	if idx := strings.Index(code, "-"); idx > 0 {
		return code[:idx]
	}
	return code
}

// Common error constructors for frequently used errors

// NewEmptyRoleError creates an empty role description error
func NewEmptyRoleError() *HirePlanError {
	return New(ErrCodeInputEmptyRole, "role description must not be empty").
		WithSuggestion("Provide a short free-text description of the open position").
		WithSuggestion("Example: 'Senior Backend Developer, building APIs, leading a small team'")
}

// NewGatewayRequestError creates a gateway request failure error
func NewGatewayRequestError(gateway string, cause error) *HirePlanError {
	return Wrap(ErrCodeGatewayRequest, fmt.Sprintf("request to gateway %s failed", gateway), cause).
		WithSuggestion("Check network connectivity to the language-model service").
		WithSuggestion("Verify the gateway base URL in hireplan.yaml")
}

// NewGatewayAPIError creates a gateway API-level error
func NewGatewayAPIError(gateway string, detail string) *HirePlanError {
	return New(ErrCodeGatewayAPI, fmt.Sprintf("gateway %s returned an error: %s", gateway, detail)).
		WithSuggestion("Check that the API key is valid and not expired").
		WithSuggestion("Run 'hireplan serve' health checks to verify gateway connectivity")
}

// NewGatewayTimeoutError creates a gateway timeout error
func NewGatewayTimeoutError(gateway string, cause error) *HirePlanError {
	return Wrap(ErrCodeGatewayTimeout, fmt.Sprintf("gateway %s timed out", gateway), cause).
		WithSuggestion("Increase pipeline.step_timeout in hireplan.yaml")
}

// NewEmptyStepOutputError creates an empty step output contract error
func NewEmptyStepOutputError(step string) *HirePlanError {
	return New(ErrCodeContractEmptyOutput, "generation step returned empty output").
		WithStep(step)
}

// NewStepFailedError creates a pipeline step failure wrapping the step's error
func NewStepFailedError(step string, cause error) *HirePlanError {
	return Wrap(ErrCodePipelineStepFailed, "pipeline step failed, run aborted", cause).
		WithStep(step).
		WithSuggestion("Resubmit the request to retry the full pipeline")
}

// NewInvalidTransitionError creates an invalid state transition error
func NewInvalidTransitionError(from, to string) *HirePlanError {
	return New(ErrCodePipelineInvalidTransition,
		fmt.Sprintf("invalid session transition from %s to %s", from, to))
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(detail string) *HirePlanError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", detail)).
		WithSuggestion("Review hireplan.yaml against the documented fields")
}

// NewFileUnmarshalError creates a parse error for a config file
func NewFileUnmarshalError(path string, format string, cause error) *HirePlanError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
