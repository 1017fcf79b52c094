package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig defines configuration options for the OpenAI model client.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// OpenAIModel implements Model against the OpenAI chat completion API.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(cfg OpenAIConfig) (*OpenAIModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIModel{client: client, model: cfg.Model}, nil
}

func (m *OpenAIModel) Generate(ctx context.Context, prompt string) (string, error) {
	const op = "ai.Generate"

	request := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := m.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned from openai", op)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
