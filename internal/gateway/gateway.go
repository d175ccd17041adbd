// Package gateway provides clients for the external language-model service.
//
// The pipeline treats the gateway as an opaque collaborator: a structured
// prompt goes in, generated text or a typed failure comes out. Clients do
// not retry; retry policy, if any, belongs to the operator's infrastructure.
package gateway

import (
	"context"
	"time"
)

// Client is the interface every language-model gateway must implement.
type Client interface {
	// Generate sends a prompt and returns the complete response.
	// It blocks until the gateway answers, fails, or ctx expires.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Name returns the gateway identifier (e.g., "gemini", "openai").
	Name() string

	// Health verifies the gateway is reachable and credentials are valid.
	// Returns nil if healthy, an error describing the problem otherwise.
	Health(ctx context.Context) error

	// Close cleans up any resources used by the client.
	Close() error
}

// GenerateRequest contains the parameters for one generation call.
type GenerateRequest struct {
	// Prompt is the main input text for the model
	Prompt string `json:"prompt"`

	// SystemPrompt sets the system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens limits the maximum response length (0 = provider default)
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0 = provider default)
	Temperature float64 `json:"temperature,omitempty"`
}

// GenerateResponse contains the model's response.
type GenerateResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// Model is the actual model that generated the response
	Model string `json:"model"`

	// TokensUsed is the total tokens consumed (input + output)
	TokensUsed int `json:"tokens_used"`

	// Latency is how long the generation took
	Latency time.Duration `json:"latency"`

	// FinishReason explains why generation stopped
	FinishReason string `json:"finish_reason,omitempty"`
}
