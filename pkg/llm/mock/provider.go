package mock

import (
	"context"
	"fmt"
	"strings"

	"studybuddy-be/pkg/llm"
)

// MockProvider is a deterministic, offline LLM used when no live
// credentials are configured. Answers simply echo back a digest of the
// prompt so the full pipeline (prompt assembly, citation wiring, error
// paths) can be exercised in tests without network access.
type MockProvider struct{}

var _ llm.LLMProvider = &MockProvider{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("mock llm: empty history")
	}

	last := history[len(history)-1].Content
	return fmt.Sprintf("[mock answer] %s", firstLine(last)), nil
}

func (m *MockProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	const max = 120
	if len(s) > max {
		s = s[:max]
	}
	return s
}
