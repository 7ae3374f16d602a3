package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/tieubaoca/mindmap-be/types"
)

var (
	_ ProjectRepo   = (*MemoryStore)(nil)
	_ NodeRepo      = (*MemoryStore)(nil)
	_ EdgeRepo      = (*MemoryStore)(nil)
	_ KnowledgeRepo = (*MemoryStore)(nil)
	_ ChatRepo      = (*MemoryStore)(nil)
)

// MemoryStore keeps every collection in process memory. It backs the
// "memory" storage mode and the tests. Records are copied on the way in and out.
type MemoryStore struct {
	mu        sync.RWMutex
	projects  []types.Project
	nodes     []types.Node
	edges     []types.Edge
	documents []types.KnowledgeDocument
	messages  []types.ChatMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", types.ErrNotFound, kind, id)
}

func (s *MemoryStore) CreateProject(ctx context.Context, project *types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, *project)
	return nil
}

func (s *MemoryStore) GetProject(ctx context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, notFound("project", id)
}

func (s *MemoryStore) ListProjects(ctx context.Context) ([]*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]*types.Project, 0, len(s.projects))
	for i := len(s.projects) - 1; i >= 0; i-- {
		p := s.projects[i]
		projects = append(projects, &p)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt > projects[j].CreatedAt
	})
	return projects, nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, project *types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects[i] = *project
			return nil
		}
	}
	return notFound("project", project.ID)
}

func (s *MemoryStore) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.projects)
	s.projects = slices.DeleteFunc(s.projects, func(p types.Project) bool { return p.ID == id })
	if len(s.projects) == before {
		return notFound("project", id)
	}
	return nil
}

func (s *MemoryStore) CreateNode(ctx context.Context, node *types.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, *node)
	return nil
}

func (s *MemoryStore) GetNode(ctx context.Context, id string) (*types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nodes {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, notFound("node", id)
}

func (s *MemoryStore) filterNodes(keep func(n types.Node) bool) []*types.Node {
	nodes := make([]*types.Node, 0)
	for _, n := range s.nodes {
		if keep(n) {
			nodes = append(nodes, &n)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].CreatedAt < nodes[j].CreatedAt
	})
	return nodes
}

func (s *MemoryStore) ListNodesByProject(ctx context.Context, projectID string) ([]*types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterNodes(func(n types.Node) bool { return n.ProjectID == projectID }), nil
}

func (s *MemoryStore) ListChildren(ctx context.Context, parentID string) ([]*types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterNodes(func(n types.Node) bool {
		return n.ParentID != nil && *n.ParentID == parentID
	}), nil
}

func (s *MemoryStore) CountNodesByProject(ctx context.Context, projectID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, n := range s.nodes {
		if n.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) UpdateNode(ctx context.Context, node *types.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.nodes {
		if s.nodes[i].ID == node.ID {
			s.nodes[i] = *node
			return nil
		}
	}
	return notFound("node", node.ID)
}

func (s *MemoryStore) DeleteNodes(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = slices.DeleteFunc(s.nodes, func(n types.Node) bool { return slices.Contains(ids, n.ID) })
	return nil
}

func (s *MemoryStore) DeleteNodesByProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = slices.DeleteFunc(s.nodes, func(n types.Node) bool { return n.ProjectID == projectID })
	return nil
}

func (s *MemoryStore) CreateEdge(ctx context.Context, edge *types.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append(s.edges, *edge)
	return nil
}

func (s *MemoryStore) GetEdge(ctx context.Context, id string) (*types.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.edges {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, notFound("edge", id)
}

func (s *MemoryStore) FindEdge(ctx context.Context, sourceID, targetID string) (*types.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.edges {
		if e.SourceID == sourceID && e.TargetID == targetID {
			return &e, nil
		}
	}
	return nil, notFound("edge", sourceID+"->"+targetID)
}

func (s *MemoryStore) ListEdgesByProject(ctx context.Context, projectID string) ([]*types.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	edges := make([]*types.Edge, 0)
	for _, e := range s.edges {
		if e.ProjectID == projectID {
			edges = append(edges, &e)
		}
	}
	return edges, nil
}

func (s *MemoryStore) DeleteEdge(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.edges)
	s.edges = slices.DeleteFunc(s.edges, func(e types.Edge) bool { return e.ID == id })
	if len(s.edges) == before {
		return notFound("edge", id)
	}
	return nil
}

func (s *MemoryStore) DeleteEdgesByNodes(ctx context.Context, nodeIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = slices.DeleteFunc(s.edges, func(e types.Edge) bool {
		return slices.Contains(nodeIDs, e.SourceID) || slices.Contains(nodeIDs, e.TargetID)
	})
	return nil
}

func (s *MemoryStore) DeleteEdgesByProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = slices.DeleteFunc(s.edges, func(e types.Edge) bool { return e.ProjectID == projectID })
	return nil
}

func (s *MemoryStore) CreateDocument(ctx context.Context, doc *types.KnowledgeDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, *doc)
	return nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, id string) (*types.KnowledgeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, notFound("document", id)
}

func (s *MemoryStore) ListDocumentsByProject(ctx context.Context, projectID string) ([]*types.KnowledgeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]*types.KnowledgeDocument, 0)
	for _, d := range s.documents {
		if d.ProjectID == projectID {
			docs = append(docs, &d)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt < docs[j].CreatedAt
	})
	return docs, nil
}

func (s *MemoryStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.documents)
	s.documents = slices.DeleteFunc(s.documents, func(d types.KnowledgeDocument) bool { return d.ID == id })
	if len(s.documents) == before {
		return notFound("document", id)
	}
	return nil
}

func (s *MemoryStore) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = slices.DeleteFunc(s.documents, func(d types.KnowledgeDocument) bool {
		return d.ProjectID == projectID
	})
	return nil
}

func (s *MemoryStore) AppendMessage(ctx context.Context, msg *types.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *MemoryStore) ListMessagesByNode(ctx context.Context, nodeID string) ([]*types.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := make([]*types.ChatMessage, 0)
	for _, m := range s.messages {
		if m.NodeID == nodeID {
			messages = append(messages, &m)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})
	return messages, nil
}

func (s *MemoryStore) DeleteMessagesByNodes(ctx context.Context, nodeIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = slices.DeleteFunc(s.messages, func(m types.ChatMessage) bool {
		return slices.Contains(nodeIDs, m.NodeID)
	})
	return nil
}
