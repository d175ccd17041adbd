// Package health monitors the service's runtime dependencies, primarily the
// language-model gateways, and exposes the results through Kubernetes-style
// liveness, readiness, and startup probes.
//
// A Checker verifies one dependency. The Manager fans checks out in
// parallel under a timeout and aggregates the results; the ProbeManager
// layers process-lifecycle state (initialized, shutting down) on top for
// the HTTP probe endpoints.
package health

import (
	"context"
	"time"
)

// Checker is a single pluggable health check. Names are lowercase with
// hyphens (e.g. "gateway-gemini") and must be unique within a manager.
type Checker interface {
	Name() string

	// Check verifies the dependency. It must respect the context deadline
	// and return quickly; the manager enforces a per-check timeout.
	Check(ctx context.Context) *Result
}

// Status is the verdict of a health check.
type Status string

const (
	// StatusHealthy means the dependency is fully operational.
	StatusHealthy Status = "healthy"

	// StatusDegraded means the dependency is partially working; the
	// service continues with reduced capability.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy means the dependency is not working.
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) String() string {
	return string(s)
}

// Result is the outcome of one check. Details carries structured extras
// such as the gateway model or error text.
type Result struct {
	Status  Status         `json:"status"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Latency time.Duration  `json:"latency_ms"`
}

// NewResult creates a result with the given status and message.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]any),
	}
}

// WithDetail adds a detail and returns the result for chaining.
func (r *Result) WithDetail(key string, value any) *Result {
	r.Details[key] = value
	return r
}

// Healthy creates a healthy result.
func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

// Degraded creates a degraded result.
func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
