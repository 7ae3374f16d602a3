package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/types"
)

type ChatService interface {
	// SendMessage logs the user message, asks the assistant and logs its answer.
	SendMessage(ctx context.Context, nodeID, message string, useKnowledge bool) (*types.ChatTurnResponse, error)
	History(ctx context.Context, nodeID string) ([]*types.ChatMessage, error)
	RelevantKnowledge(ctx context.Context, nodeID, query string) (*types.RelevantKnowledgeResponse, error)
}

type chatService struct {
	nodes     repository.NodeRepo
	chats     repository.ChatRepo
	search    *KnowledgeSearchService
	assistant *AssistantService
}

func NewChatService(nodes repository.NodeRepo, chats repository.ChatRepo, search *KnowledgeSearchService, assistant *AssistantService) ChatService {
	return &chatService{
		nodes:     nodes,
		chats:     chats,
		search:    search,
		assistant: assistant,
	}
}

func (s *chatService) SendMessage(ctx context.Context, nodeID, message string, useKnowledge bool) (*types.ChatTurnResponse, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("%w: node id required", types.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message required", types.ErrInvalidInput)
	}
	node, err := s.nodes.GetNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.appendMessage(ctx, nodeID, types.CHAT_ROLE_USER, message, types.CHAT_SOURCE_USER, 0)
	if err != nil {
		return nil, err
	}

	response := s.assistant.GenerateResponse(ctx, message, node, useKnowledge)

	aiMsg, err := s.appendMessage(ctx, nodeID, response.Role, response.Message, response.Source, userMsg.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &types.ChatTurnResponse{
		UserMessage: userMsg,
		AIResponse:  aiMsg,
		Metadata: types.ChatMetadata{
			Source:           response.Source,
			KnowledgeUsed:    response.KnowledgeUsed,
			KnowledgeSources: response.KnowledgeSources,
		},
	}, nil
}

// appendMessage stamps the message strictly after notBefore so a reply never
// sorts ahead of the message it answers.
func (s *chatService) appendMessage(ctx context.Context, nodeID, role, message, source string, notBefore int64) (*types.ChatMessage, error) {
	createdAt := time.Now().UnixNano()
	if createdAt <= notBefore {
		createdAt = notBefore + 1
	}
	msg := &types.ChatMessage{
		ID:        uuid.NewString(),
		NodeID:    nodeID,
		Role:      role,
		Message:   message,
		Source:    source,
		CreatedAt: createdAt,
	}
	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save %s message: %w", role, err)
	}
	return msg, nil
}

func (s *chatService) History(ctx context.Context, nodeID string) ([]*types.ChatMessage, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("%w: node id required", types.ErrInvalidInput)
	}
	return s.chats.ListMessagesByNode(ctx, nodeID)
}

func (s *chatService) RelevantKnowledge(ctx context.Context, nodeID, query string) (*types.RelevantKnowledgeResponse, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("%w: node id required", types.ErrInvalidInput)
	}
	node, err := s.nodes.GetNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	docs, err := s.search.Search(ctx, node, query, RelevantKnowledgeTopK)
	if err != nil {
		return nil, err
	}
	return &types.RelevantKnowledgeResponse{
		NodeID:    nodeID,
		Knowledge: docs,
		Count:     len(docs),
	}, nil
}
