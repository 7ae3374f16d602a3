package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/tieubaoca/mindmap-be/types"
)

const OPENAI_SOURCE = "openai-api"

var _ LanguageModel = (*OpenAIService)(nil)

// OpenAIService talks to any OpenAI compatible chat completion endpoint.
type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(baseURL string, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (s *OpenAIService) Identifier() string {
	return OPENAI_SOURCE
}

// Complete sends the assembled prompt as one user message.
func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrModel, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no response generated", types.ErrModel)
	}
	return resp.Choices[0].Message.Content, nil
}
