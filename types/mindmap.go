package types

import (
	"fmt"
)

type NodeStatus string

const (
	NODE_STATUS_NOT_STARTED NodeStatus = "not-started"
	NODE_STATUS_IN_PROGRESS NodeStatus = "in-progress"
	NODE_STATUS_COMPLETED   NodeStatus = "completed"
)

// ParseNodeStatus validates a raw status value. An empty value means not-started.
func ParseNodeStatus(raw string) (NodeStatus, error) {
	switch NodeStatus(raw) {
	case "":
		return NODE_STATUS_NOT_STARTED, nil
	case NODE_STATUS_NOT_STARTED, NODE_STATUS_IN_PROGRESS, NODE_STATUS_COMPLETED:
		return NodeStatus(raw), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
}

// DisplayName returns the human readable status used in prompts.
func (s NodeStatus) DisplayName() string {
	switch s {
	case NODE_STATUS_IN_PROGRESS:
		return "In Progress"
	case NODE_STATUS_COMPLETED:
		return "Completed"
	default:
		return "Not Started"
	}
}

// Project is the root container of a mind map.
type Project struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	CreatedAt   int64  `json:"created_at" bson:"created_at"`
	UpdatedAt   int64  `json:"updated_at" bson:"updated_at"`
}

type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a unit of planning work. ParentID refers to a node of the same project.
type Node struct {
	ID          string     `json:"id" bson:"_id"`
	ProjectID   string     `json:"project_id" bson:"project_id"`
	Label       string     `json:"label" bson:"label"`
	Description string     `json:"description" bson:"description"`
	Status      NodeStatus `json:"status" bson:"status"`
	Owner       *string    `json:"owner" bson:"owner,omitempty"`
	ParentID    *string    `json:"parent_id" bson:"parent_id,omitempty"`
	Position    Position   `json:"position" bson:"position"`
	CreatedAt   int64      `json:"created_at" bson:"created_at"`
	UpdatedAt   int64      `json:"updated_at" bson:"updated_at"`
}

type Edge struct {
	ID        string `json:"id" bson:"_id"`
	ProjectID string `json:"project_id" bson:"project_id"`
	SourceID  string `json:"source" bson:"source"`
	TargetID  string `json:"target" bson:"target"`
	CreatedAt int64  `json:"created_at" bson:"created_at"`
}

type FileType string

const (
	FILE_TYPE_PDF  FileType = "pdf"
	FILE_TYPE_TXT  FileType = "txt"
	FILE_TYPE_MD   FileType = "md"
	FILE_TYPE_DOCX FileType = "docx"
)

// KnowledgeDocument is an uploaded file with its extracted text.
type KnowledgeDocument struct {
	ID             string   `json:"id" bson:"_id"`
	ProjectID      string   `json:"project_id" bson:"project_id"`
	Title          string   `json:"title" bson:"title"`
	FileType       FileType `json:"file_type" bson:"file_type"`
	FileName       string   `json:"file" bson:"file_name"`
	ContentPreview string   `json:"content_preview" bson:"content_preview"`
	FullText       string   `json:"-" bson:"full_text"`
	CreatedAt      int64    `json:"created_at" bson:"created_at"`
}

const (
	CHAT_ROLE_USER = "user"
	CHAT_ROLE_AI   = "ai"
)

const (
	CHAT_SOURCE_USER = "user"
	CHAT_SOURCE_MOCK = "mock"
)

// ChatMessage is one entry of a node's chat history.
type ChatMessage struct {
	ID        string `json:"id" bson:"_id"`
	NodeID    string `json:"node_id" bson:"node_id"`
	Role      string `json:"role" bson:"role"`
	Message   string `json:"message" bson:"message"`
	Source    string `json:"source" bson:"source"`
	CreatedAt int64  `json:"created_at" bson:"created_at"`
}

// AIResponse is the normalized result of one assistant turn.
type AIResponse struct {
	Message          string   `json:"message"`
	Role             string   `json:"role"`
	Source           string   `json:"source"`
	KnowledgeUsed    bool     `json:"knowledge_used"`
	KnowledgeSources []string `json:"knowledge_sources"`
}
