package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ProjectSummary struct {
	Project
	NodeCount int64 `json:"node_count"`
}

type ProjectDetail struct {
	Project
	Nodes     []*Node              `json:"nodes"`
	Edges     []*Edge              `json:"edges"`
	Knowledge []*KnowledgeDocument `json:"knowledge_bases"`
}

type ChatMetadata struct {
	Source           string   `json:"source"`
	KnowledgeUsed    bool     `json:"knowledge_used"`
	KnowledgeSources []string `json:"knowledge_sources"`
}

type ChatTurnResponse struct {
	UserMessage *ChatMessage `json:"user_message"`
	AIResponse  *ChatMessage `json:"ai_response"`
	Metadata    ChatMetadata `json:"metadata"`
}

type RelevantKnowledgeResponse struct {
	NodeID    string               `json:"node"`
	Knowledge []*KnowledgeDocument `json:"knowledge"`
	Count     int                  `json:"count"`
}
