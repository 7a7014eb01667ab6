package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// OpenAIClient implements ports.LLMClient against an OpenAI-compatible chat completions API
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// NewOpenAIClient creates an OpenAI-compatible client from config
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	if strings.TrimSpace(config.Model) == "" {
		return nil, fmt.Errorf("missing model")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIClient{
		APIKey:      config.APIKey,
		BaseURL:     baseURL,
		Model:       config.Model,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		HTTPClient:  &http.Client{Timeout: config.Timeout},
	}, nil
}

// Complete sends one system + one user message and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type responseFormat struct {
		Type string `json:"type"`
	}
	type reqBody struct {
		Model          string         `json:"model"`
		Messages       []msg          `json:"messages"`
		Temperature    float64        `json:"temperature,omitempty"`
		MaxTokens      int            `json:"max_tokens,omitempty"`
		ResponseFormat responseFormat `json:"response_format"`
	}
	body := reqBody{
		Model: c.Model,
		Messages: []msg{
			{Role: "system", Content: "You are a school well-being analyst. Respond with valid JSON only."},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.Temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// MockLLMClient is a canned LLM client for tests. Safe for concurrent use.
type MockLLMClient struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors

	mu      sync.Mutex
	prompts []string
}

// Prompts returns a copy of every prompt received so far
func (m *MockLLMClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *MockLLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.Error != nil {
		return "", m.Error
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return `{
		"executive_summary": "Most students report manageable stress levels.",
		"strengths": "Peer support is above the national rate.",
		"intervention": "Introduce exam preparation workshops."
	}`, nil
}
