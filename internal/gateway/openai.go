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
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIClient implements Client for the OpenAI chat completions API.
type OpenAIClient struct {
	name      string
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// OpenAI API request/response structures
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
	Error   *openAIError   `json:"error,omitempty"`
}

type openAIChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// NewOpenAIClient creates an OpenAI gateway client from configuration.
func NewOpenAIClient(cfg config.GatewayConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigInvalidError(
			fmt.Sprintf("gateway %s has no API key", cfg.Name))
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIClient{
		name:      cfg.Name,
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		model:     model,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Name implements Client.Name
func (c *OpenAIClient) Name() string {
	return c.name
}

// Generate implements Client.Generate
func (c *OpenAIClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	startTime := time.Now()

	reqBody, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, errors.NewGatewayRequestError(c.name, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.NewGatewayRequestError(c.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

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
		var errResp openAIResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, errors.NewGatewayAPIError(c.name, errResp.Error.Message)
		}
		return nil, errors.NewGatewayAPIError(c.name,
			fmt.Sprintf("status %d: %s", httpResp.StatusCode, string(respBody)))
	}

	var oaiResp openAIResponse
	if err := json.Unmarshal(respBody, &oaiResp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeContractUnparseable,
			fmt.Sprintf("gateway %s returned an unparseable body", c.name), err)
	}

	content := ""
	finishReason := ""
	if len(oaiResp.Choices) > 0 {
		content = oaiResp.Choices[0].Message.Content
		finishReason = oaiResp.Choices[0].FinishReason
	}

	model := oaiResp.Model
	if model == "" {
		model = c.model
	}

	return &GenerateResponse{
		Content:      content,
		Model:        model,
		TokensUsed:   oaiResp.Usage.TotalTokens,
		Latency:      time.Since(startTime),
		FinishReason: finishReason,
	}, nil
}

// buildRequest constructs an OpenAI API request from our GenerateRequest
func (c *OpenAIClient) buildRequest(req *GenerateRequest) *openAIRequest {
	messages := []openAIMessage{}

	if req.SystemPrompt != "" {
		messages = append(messages, openAIMessage{
			Role:    "system",
			Content: req.SystemPrompt,
		})
	}

	messages = append(messages, openAIMessage{
		Role:    "user",
		Content: req.Prompt,
	})

	maxTokens := c.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	return &openAIRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}
}

// Health implements Client.Health by listing models.
func (c *OpenAIClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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
func (c *OpenAIClient) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
