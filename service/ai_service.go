package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tieubaoca/mindmap-be/types"
)

const (
	PROVIDER_GEMINI = "gemini"
	PROVIDER_OPENAI = "openai"

	// placeholderAPIKey is what the sample config ships with.
	placeholderAPIKey = "INSERT API KEY"
)

// LanguageModel completes a prompt. Any failure is reported as an error
// wrapping types.ErrModel.
type LanguageModel interface {
	Identifier() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// AssistantConfig selects the model backing the assistant. It is resolved once
// at startup.
type AssistantConfig struct {
	Provider        string
	ModelIdentifier string
	// Credential may hold several comma separated keys; Gemini rotates through them.
	Credential string
	BaseURL    string
	Timeout    time.Duration
}

// Enabled reports whether remote dispatch is possible with this config.
func (c AssistantConfig) Enabled() bool {
	if strings.TrimSpace(c.Credential) == placeholderAPIKey {
		return false
	}
	return len(c.apiKeys()) > 0
}

func (c AssistantConfig) apiKeys() []string {
	keys := make([]string, 0)
	for _, k := range strings.Split(c.Credential, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// NewLanguageModel builds the configured model client. It returns nil without
// error when no usable credential is configured, which routes every turn to
// the mock responder.
func NewLanguageModel(ctx context.Context, cfg AssistantConfig) (LanguageModel, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	switch cfg.Provider {
	case PROVIDER_GEMINI, "":
		gemini, err := NewGeminiService(ctx, cfg.apiKeys(), cfg.ModelIdentifier)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return gemini, nil
	case PROVIDER_OPENAI:
		return NewOpenAIService(cfg.BaseURL, cfg.apiKeys()[0], cfg.ModelIdentifier), nil
	default:
		return nil, fmt.Errorf("%w: unknown ai provider %q", types.ErrInvalidInput, cfg.Provider)
	}
}
