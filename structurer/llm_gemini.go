package structurer

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultModel is used when the config does not name one.
	DefaultModel = "gemini-2.0-flash"
	// geminiBaseURL is Gemini's OpenAI-compatible chat completions endpoint.
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// GeminiLLM implements LLMClient against the Gemini API through its
// OpenAI-compatible surface, using the official openai-go SDK.
type GeminiLLM struct {
	Model       string
	Temperature float64
	Opts        []option.RequestOption
}

func NewGeminiLLM(cfg *Settings) (*GeminiLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; set GEMINI_API_KEY or gemini.api_key")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
	}
	return &GeminiLLM{Model: model, Temperature: cfg.Temperature, Opts: opts}, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(g.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(g.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("gemini: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
