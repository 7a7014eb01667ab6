package ports

import "context"

// LLMClient sends a single prompt and returns the model's text
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
