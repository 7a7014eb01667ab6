package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"wellbeing/internal"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient implements ports.LLMClient with Google's Gemini API
type GeminiClient struct {
	client *genai.Client
	config Config
	logger *internal.Logger
}

// NewGeminiClient creates a Gemini client
func NewGeminiClient(ctx context.Context, config Config, logger *internal.Logger) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if config.Model == "" {
		config.Model = defaultGeminiModel
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	cc := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	logger.Info("[GeminiClient] Initialized with model=%s, temp=%.2f, maxTokens=%d", config.Model, config.Temperature, config.MaxTokens)
	return &GeminiClient{client: client, config: config, logger: logger}, nil
}

// Complete sends a single user prompt and returns the generated text
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.config.Temperature)),
	}
	if c.config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(c.config.MaxTokens)
	}

	c.logger.Debug("[GeminiClient] Sending request to %s - promptLength=%d", c.config.Model, len(prompt))
	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	c.logger.Debug("[GeminiClient] Response length: %d bytes", len(text))
	return text, nil
}
