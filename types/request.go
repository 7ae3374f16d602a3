package types

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateNodeRequest struct {
	ProjectID   string    `json:"project"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Owner       *string   `json:"owner"`
	ParentID    string    `json:"parent_id"`
	Position    *Position `json:"position"`
}

// UpdateNodeRequest only touches the fields that are set. An empty ParentID
// detaches the node and makes it a root.
type UpdateNodeRequest struct {
	Label       *string `json:"label"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Owner       *string `json:"owner"`
	ParentID    *string `json:"parent_id"`
}

type MoveNodeRequest struct {
	Position Position `json:"position"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateEdgeRequest struct {
	ProjectID string `json:"project"`
	SourceID  string `json:"source"`
	TargetID  string `json:"target"`
}

type ChatNodeRequest struct {
	Message      string `json:"message"`
	UseKnowledge *bool  `json:"use_knowledge"`
}

// UseKnowledgeOrDefault reports whether retrieval is requested; it defaults to true.
func (r ChatNodeRequest) UseKnowledgeOrDefault() bool {
	if r.UseKnowledge == nil {
		return true
	}
	return *r.UseKnowledge
}
