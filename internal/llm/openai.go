package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

// openAIProvider talks to any OpenAI-compatible chat completion endpoint.
type openAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

func newOpenAIProvider(cfg model.LLMConfig) (*openAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %q", cfg.Provider)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required for provider %q", cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		name:   cfg.Provider,
	}, nil
}

func (p *openAIProvider) Name() string {
	return p.name
}

func (p *openAIProvider) Digest(ctx context.Context, report model.Report, maxTokens int) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(report),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
