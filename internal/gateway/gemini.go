package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hireplan-ai/hireplan/internal/config"
	"github.com/hireplan-ai/hireplan/internal/errors"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-pro-latest"
)

// GeminiClient implements Client for the Google Gemini API.
type GeminiClient struct {
	name      string
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// Gemini API request/response structures
type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata *geminiUsage      `json:"usageMetadata,omitempty"`
	ModelVersion  string            `json:"modelVersion,omitempty"`
	Error         *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGeminiClient creates a Gemini gateway client from configuration.
func NewGeminiClient(cfg config.GatewayConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigInvalidError(
			fmt.Sprintf("gateway %s has no API key", cfg.Name))
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiClient{
		name:      cfg.Name,
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		model:     model,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Name implements Client.Name
func (c *GeminiClient) Name() string {
	return c.name
}

// Generate implements Client.Generate
func (c *GeminiClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	startTime := time.Now()

	reqBody, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, errors.NewGatewayRequestError(c.name, fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.NewGatewayRequestError(c.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, errors.NewGatewayTimeoutError(c.name, err)
		}
		return nil, errors.NewGatewayRequestError(c.name, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.NewGatewayRequestError(c.name, fmt.Errorf("read response: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, errors.NewGatewayAPIError(c.name,
				fmt.Sprintf("%s (code %d)", errResp.Error.Message, errResp.Error.Code))
		}
		return nil, errors.NewGatewayAPIError(c.name,
			fmt.Sprintf("status %d: %s", httpResp.StatusCode, string(respBody)))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeContractUnparseable,
			fmt.Sprintf("gateway %s returned an unparseable body", c.name), err)
	}

	if geminiResp.Error != nil {
		return nil, errors.NewGatewayAPIError(c.name,
			fmt.Sprintf("%s (code %d)", geminiResp.Error.Message, geminiResp.Error.Code))
	}

	content := ""
	finishReason := ""
	if len(geminiResp.Candidates) > 0 {
		finishReason = geminiResp.Candidates[0].FinishReason
		for _, part := range geminiResp.Candidates[0].Content.Parts {
			content += part.Text
		}
	}

	tokensUsed := 0
	if geminiResp.UsageMetadata != nil {
		tokensUsed = geminiResp.UsageMetadata.TotalTokenCount
	}

	model := geminiResp.ModelVersion
	if model == "" {
		model = c.model
	}

	return &GenerateResponse{
		Content:      content,
		Model:        model,
		TokensUsed:   tokensUsed,
		Latency:      time.Since(startTime),
		FinishReason: finishReason,
	}, nil
}

// buildRequest constructs a Gemini API request from our GenerateRequest
func (c *GeminiClient) buildRequest(req *GenerateRequest) *geminiRequest {
	geminiReq := &geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: req.Prompt}},
			},
		},
	}

	if req.SystemPrompt != "" {
		geminiReq.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemPrompt}},
		}
	}

	genConfig := &geminiGenerationConfig{}
	hasConfig := false

	if req.Temperature > 0 {
		temp := req.Temperature
		genConfig.Temperature = &temp
		hasConfig = true
	}

	maxTokens := c.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	if maxTokens > 0 {
		genConfig.MaxOutputTokens = maxTokens
		hasConfig = true
	}

	if hasConfig {
		geminiReq.GenerationConfig = genConfig
	}

	return geminiReq
}

// Health implements Client.Health by listing models.
func (c *GeminiClient) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/models?key=%s&pageSize=1", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// Close implements Client.Close
func (c *GeminiClient) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
