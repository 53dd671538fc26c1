package generator

import "context"

// MockGenerator is a mock implementation of service.ContentGenerator for testing
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt, tone string) (string, string)
}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt, tone string) (string, string) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, tone)
	}

	// Default mock behavior: echo the prompt with a fixed subject
	return "Generated: " + prompt, "Mock subject"
}
