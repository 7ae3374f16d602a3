package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tieubaoca/mindmap-be/types"
)

const noDescriptionPlaceholder = "No description provided"

const systemPromptTemplate = `You are an intelligent assistant for DevBrain, a mind-mapping tool for project planning.
The user is working on: **%s**
Description: %s
Status: %s

%s

Guidelines:
- Keep responses concise and actionable (2-3 sentences)
- Ground answers in the provided knowledge base when possible
- If asked to break down work, suggest concrete subtasks
- Maintain focus on the current node's scope
- Be helpful without unnecessary elaboration`

// AssistantService produces the AI side of a node chat turn. It holds no
// per-call state.
type AssistantService struct {
	search  *KnowledgeSearchService
	model   LanguageModel
	timeout time.Duration
	logger  *slog.Logger
}

// NewAssistantService wires the assistant. A nil model sends every turn to the
// mock responder; a positive timeout bounds each model call.
func NewAssistantService(search *KnowledgeSearchService, model LanguageModel, timeout time.Duration, logger *slog.Logger) *AssistantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistantService{
		search:  search,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Source names where responses come from when everything works.
func (s *AssistantService) Source() string {
	if s.model == nil {
		return types.CHAT_SOURCE_MOCK
	}
	return s.model.Identifier()
}

// BuildPrompt assembles the system framing for node followed by the user message.
func BuildPrompt(message string, node *types.Node, knowledgeContext string) string {
	description := node.Description
	if description == "" {
		description = noDescriptionPlaceholder
	}
	systemPrompt := fmt.Sprintf(systemPromptTemplate, node.Label, description, node.Status.DisplayName(), knowledgeContext)
	return systemPrompt + "\n\nUser: " + message
}

// GenerateResponse never fails: model errors fall back to the mock responder.
func (s *AssistantService) GenerateResponse(ctx context.Context, message string, node *types.Node, useKnowledge bool) *types.AIResponse {
	docs := []*types.KnowledgeDocument{}
	knowledgeContext := ""
	if useKnowledge {
		found, err := s.search.Search(ctx, node, message, NodeContextTopK)
		if err != nil {
			s.logger.Warn("knowledge retrieval failed, answering without it", "node_id", node.ID, "error", err)
		} else {
			docs = found
		}
		knowledgeContext = FormatContext(docs)
	}

	prompt := BuildPrompt(message, node, knowledgeContext)

	if s.model == nil {
		return MockResponse(message, node, docs)
	}
	return s.dispatch(ctx, prompt, message, node, docs)
}

func (s *AssistantService) dispatch(ctx context.Context, prompt, message string, node *types.Node, docs []*types.KnowledgeDocument) *types.AIResponse {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("language model call failed, using mock responder",
			"source", s.model.Identifier(),
			"node_id", node.ID,
			"error", err,
		)
		return MockResponse(message, nil, docs)
	}

	return &types.AIResponse{
		Message:          text,
		Role:             types.CHAT_ROLE_AI,
		Source:           s.model.Identifier(),
		KnowledgeUsed:    len(docs) > 0,
		KnowledgeSources: DocumentTitles(docs),
	}
}

// complete turns a panicking client into an error like any other model failure.
func (s *AssistantService) complete(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", types.ErrModel, r)
		}
	}()
	return s.model.Complete(ctx, prompt)
}
