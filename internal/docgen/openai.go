package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenAI chat completions endpoint.
const DefaultBaseURL = "https://api.openai.com/v1/chat/completions"

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_completion_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ClientConfig configures an OpenAIClient.
type ClientConfig struct {
	APIKey       string
	Model        string
	BaseURL      string
	SystemPrompt string
	// Temperature is sent as given, zero included. Nil leaves it to the server.
	Temperature *float64
	MaxTokens    int
	Timeout      time.Duration
	Logger       *slog.Logger
}

// OpenAIClient is a Generator backed by an OpenAI-compatible chat completions
// endpoint. It is safe for concurrent use.
type OpenAIClient struct {
	httpClient *http.Client
	cfg        ClientConfig
	logger     *slog.Logger
}

// NewOpenAIClient creates a client. An empty API key returns ErrNotConfigured.
func NewOpenAIClient(cfg ClientConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is missing: %w", ErrNotConfigured)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: model is missing: %w", ErrNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OpenAIClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Generate sends prompt as a single user message and returns the first choice.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if c.cfg.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.cfg.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	payload := chatRequest{
		Model:    c.cfg.Model,
		Messages: messages,
	}
	if c.cfg.Temperature != nil {
		temp := *c.cfg.Temperature
		payload.Temperature = &temp
	}
	if c.cfg.MaxTokens > 0 {
		tokens := c.cfg.MaxTokens
		payload.MaxTokens = &tokens
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.Debug("Sending chat completion request", "model", c.cfg.Model, "prompt_len", len(prompt))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: HTTP request failed: %w: %w", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: reading response body: %w: %w", ErrGenerationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: API returned status %d: %s: %w", resp.StatusCode, truncate(string(respBody), 200), ErrGenerationFailed)
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("openai: parsing response JSON: %w: %w", ErrGenerationFailed, err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("openai: API error: %s - %s: %w", apiResp.Error.Type, apiResp.Error.Message, ErrGenerationFailed)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("openai: returned no choices: %w", ErrGenerationFailed)
	}

	text := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	c.logger.Debug("Received chat completion",
		"finish_reason", apiResp.Choices[0].FinishReason,
		"response_len", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if text == "" {
		return "", fmt.Errorf("openai: empty response: %w", ErrGenerationFailed)
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
