package ai

import (
	"context"

	"github.com/fernwave/chat-service/internal/domain"
)

// MockProvider returns canned replies. Used in the test environment and as
// the swap target for suites that assert on generation output.
type MockProvider struct {
	Reply string
	Calls int
}

// NewMockProvider builds a mock with a default reply.
func NewMockProvider() *MockProvider {
	return &MockProvider{Reply: "This is a mock reply."}
}

func (p *MockProvider) Name() string { return "mock" }

func (p *MockProvider) Generate(_ context.Context, _ []domain.Message) (string, error) {
	p.Calls++
	return p.Reply, nil
}
