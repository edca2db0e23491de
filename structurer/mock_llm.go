package structurer

import "context"

// MockLLM is a placeholder implementation for local runs without an API key.
// It returns a minimal valid structured document regardless of input.
type MockLLM struct{}

func (m MockLLM) Generate(_ context.Context, _ string) (string, error) {
	return `{
  "lead": "Placeholder lead produced by the mock backend.",
  "points": {"title": "Points", "items": ["one", "two", "three"]},
  "sections": [
    {"type": "heading", "level": 2, "text": "Section"},
    {"type": "paragraph", "text": "Placeholder body."}
  ],
  "summary": {"title": "Summary", "items": ["a", "b", "c", "d"]}
}`, nil
}
