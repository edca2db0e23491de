package structurer

import "context"

// LLMClient abstracts the text-generation backend so it can be swapped or
// mocked. One call per structuring attempt.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Settings is the base configuration handed to concrete clients.
type Settings struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}
