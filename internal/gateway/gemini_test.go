package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireplan-ai/hireplan/internal/config"
)

func geminiTestConfig(baseURL string) config.GatewayConfig {
	return config.GatewayConfig{
		Name:    "gemini",
		Type:    "gemini",
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gemini-1.5-pro-latest",
		Enabled: true,
	}
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(config.GatewayConfig{Name: "gemini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestGeminiGenerate_Success(t *testing.T) {
	var gotBody geminiRequest
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, ":generateContent"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := geminiResponse{
			Candidates: []geminiCandidate{
				{
					Content: geminiContent{
						Role:  "model",
						Parts: []geminiPart{{Text: "Generated job description"}},
					},
					FinishReason: "STOP",
				},
			},
			UsageMetadata: &geminiUsage{TotalTokenCount: 42},
			ModelVersion:  "gemini-1.5-pro-latest",
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))

	client, err := NewGeminiClient(geminiTestConfig(server.URL))
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), &GenerateRequest{
		Prompt:       "Create a job description",
		SystemPrompt: "You are an expert HR consultant.",
		Temperature:  0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "Generated job description", resp.Content)
	assert.Equal(t, 42, resp.TokensUsed)
	assert.Equal(t, "STOP", resp.FinishReason)

	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "Create a job description", gotBody.Contents[0].Parts[0].Text)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Equal(t, "You are an expert HR consultant.", gotBody.SystemInstruction.Parts[0].Text)
	require.NotNil(t, gotBody.GenerationConfig)
	assert.InDelta(t, 0.7, *gotBody.GenerationConfig.Temperature, 0.001)
}

func TestGeminiGenerate_APIError(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		resp := geminiResponse{
			Error: &geminiError{Code: 400, Message: "API key not valid", Status: "INVALID_ARGUMENT"},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))

	client, err := NewGeminiClient(geminiTestConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GATEWAY-002")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiGenerate_Timeout(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))

	client, err := NewGeminiClient(geminiTestConfig(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Generate(ctx, &GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GATEWAY-003")
}

func TestGeminiHealth(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models"))
		w.WriteHeader(http.StatusOK)
	}))

	client, err := NewGeminiClient(geminiTestConfig(server.URL))
	require.NoError(t, err)

	assert.NoError(t, client.Health(context.Background()))
}

func TestGeminiHealth_Unhealthy(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	client, err := NewGeminiClient(geminiTestConfig(server.URL))
	require.NoError(t, err)

	require.Error(t, client.Health(context.Background()))
}
