package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fernwave/chat-service/internal/config"
	"github.com/fernwave/chat-service/internal/domain"
)

// Provider generates assistant replies for a chat thread. It is injected as
// a capability so the test environment can swap in a canned implementation.
type Provider interface {
	Name() string
	Generate(ctx context.Context, history []domain.Message) (string, error)
}

// NewProvider selects the provider for the current environment. The test
// environment always gets the mock so suites run without network access.
func NewProvider(app config.AppConfig, cfg config.AIConfig, logger *zap.Logger) Provider {
	if app.IsTest() {
		return NewMockProvider()
	}
	return &httpProvider{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		client:   &http.Client{Timeout: 60 * time.Second},
		logger:   logger,
	}
}

// httpProvider speaks the OpenAI-compatible chat completions protocol.
type httpProvider struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
	logger   *zap.Logger
}

func (p *httpProvider) Name() string { return "http" }

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

func (p *httpProvider) Generate(ctx context.Context, history []domain.Message) (string, error) {
	payload := completionRequest{Model: p.model}
	for _, m := range history {
		payload.Messages = append(payload.Messages, completionMessage{
			Role:    roleToWire(m.Role),
			Content: m.Body,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("model provider rejected request", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("model provider returned status %d", resp.StatusCode)
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("model provider returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

func roleToWire(role domain.MessageRole) string {
	switch role {
	case domain.RoleAssistant:
		return "assistant"
	case domain.RoleSystem:
		return "system"
	default:
		return "user"
	}
}
