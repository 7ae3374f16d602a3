package repository

import (
	"context"

	"github.com/tieubaoca/mindmap-be/types"
)

// Ids and timestamps are assigned by the services before a record reaches a repo.
// Lookups of missing records return an error wrapping types.ErrNotFound.

type ProjectRepo interface {
	CreateProject(ctx context.Context, project *types.Project) error
	GetProject(ctx context.Context, id string) (*types.Project, error)
	// ListProjects returns the newest project first.
	ListProjects(ctx context.Context) ([]*types.Project, error)
	UpdateProject(ctx context.Context, project *types.Project) error
	DeleteProject(ctx context.Context, id string) error
}

type NodeRepo interface {
	CreateNode(ctx context.Context, node *types.Node) error
	GetNode(ctx context.Context, id string) (*types.Node, error)
	// ListNodesByProject and ListChildren return nodes in creation order.
	ListNodesByProject(ctx context.Context, projectID string) ([]*types.Node, error)
	ListChildren(ctx context.Context, parentID string) ([]*types.Node, error)
	CountNodesByProject(ctx context.Context, projectID string) (int64, error)
	UpdateNode(ctx context.Context, node *types.Node) error
	DeleteNodes(ctx context.Context, ids []string) error
	DeleteNodesByProject(ctx context.Context, projectID string) error
}

type EdgeRepo interface {
	CreateEdge(ctx context.Context, edge *types.Edge) error
	GetEdge(ctx context.Context, id string) (*types.Edge, error)
	FindEdge(ctx context.Context, sourceID, targetID string) (*types.Edge, error)
	ListEdgesByProject(ctx context.Context, projectID string) ([]*types.Edge, error)
	DeleteEdge(ctx context.Context, id string) error
	// DeleteEdgesByNodes removes every edge touching one of the nodes.
	DeleteEdgesByNodes(ctx context.Context, nodeIDs []string) error
	DeleteEdgesByProject(ctx context.Context, projectID string) error
}

// KnowledgeRepo is the knowledge store of a project.
type KnowledgeRepo interface {
	CreateDocument(ctx context.Context, doc *types.KnowledgeDocument) error
	GetDocument(ctx context.Context, id string) (*types.KnowledgeDocument, error)
	// ListDocumentsByProject returns documents in creation order.
	ListDocumentsByProject(ctx context.Context, projectID string) ([]*types.KnowledgeDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	DeleteDocumentsByProject(ctx context.Context, projectID string) error
}

// ChatRepo is the append-only chat history log.
type ChatRepo interface {
	AppendMessage(ctx context.Context, msg *types.ChatMessage) error
	// ListMessagesByNode returns messages in creation order.
	ListMessagesByNode(ctx context.Context, nodeID string) ([]*types.ChatMessage, error)
	// DeleteMessagesByNodes is only used when the owning nodes are deleted.
	DeleteMessagesByNodes(ctx context.Context, nodeIDs []string) error
}
