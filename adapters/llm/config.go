package llm

import "time"

// Config holds settings shared by the LLM clients
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
