package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/tieubaoca/mindmap-be/types"
	"google.golang.org/api/option"
)

const (
	GEMINI_SOURCE        = "gemini-api"
	DEFAULT_GEMINI_MODEL = "gemini-2.5-flash"
)

var _ LanguageModel = (*GeminiService)(nil)

type GeminiService struct {
	apiKeys    []string
	currentKey int
	modelName  string
	client     *genai.Client
	model      *genai.GenerativeModel
	previous   *genai.Client
	mu         sync.Mutex
}

func NewGeminiService(ctx context.Context, apiKeys []string, modelName string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}
	if modelName == "" {
		modelName = DEFAULT_GEMINI_MODEL
	}

	service := &GeminiService{
		apiKeys:    apiKeys,
		currentKey: 0,
		modelName:  modelName,
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	if err := service.initClient(ctx); err != nil {
		return nil, err
	}
	return service, nil
}

// initClient must be called with mu held.
func (s *GeminiService) initClient(ctx context.Context) error {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

// rotateAPIKey switches to the next key. Clients are never bound to a request
// context. The replaced client stays open until the next rotation or Close.
func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.client
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.initClient(context.Background()); err != nil {
		return err
	}
	if s.previous != nil {
		s.previous.Close()
	}
	s.previous = replaced
	return nil
}

func (s *GeminiService) currentModel() *genai.GenerativeModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *GeminiService) Identifier() string {
	return GEMINI_SOURCE
}

// Complete sends prompt as a single turn. A failed call is retried once with
// the next API key when more than one key is configured.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.currentModel().GenerateContent(ctx, genai.Text(prompt))
	if err != nil && len(s.apiKeys) > 1 {
		if rotateErr := s.rotateAPIKey(); rotateErr != nil {
			return "", fmt.Errorf("%w: %v", types.ErrModel, rotateErr)
		}
		resp, err = s.currentModel().GenerateContent(ctx, genai.Text(prompt))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrModel, err)
	}

	var content strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
	}
	if content.Len() == 0 {
		return "", fmt.Errorf("%w: no response generated", types.ErrModel)
	}
	return content.String(), nil
}

func (s *GeminiService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.previous != nil {
		s.previous.Close()
		s.previous = nil
	}
	return s.client.Close()
}
