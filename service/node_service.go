package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/types"
)

type NodeService interface {
	CreateNode(ctx context.Context, req types.CreateNodeRequest) (*types.Node, error)
	GetNode(ctx context.Context, id string) (*types.Node, error)
	ListNodes(ctx context.Context, projectID string) ([]*types.Node, error)
	UpdateNode(ctx context.Context, id string, req types.UpdateNodeRequest) (*types.Node, error)
	MoveNode(ctx context.Context, id string, position types.Position) (*types.Node, error)
	UpdateStatus(ctx context.Context, id string, status string) (*types.Node, error)
	Children(ctx context.Context, id string) ([]*types.Node, error)
	// DeleteNode removes the node with all of its descendants, their edges
	// and their chat history.
	DeleteNode(ctx context.Context, id string) error
}

type nodeService struct {
	projects repository.ProjectRepo
	nodes    repository.NodeRepo
	edges    repository.EdgeRepo
	chats    repository.ChatRepo
}

func NewNodeService(projects repository.ProjectRepo, nodes repository.NodeRepo, edges repository.EdgeRepo, chats repository.ChatRepo) NodeService {
	return &nodeService{
		projects: projects,
		nodes:    nodes,
		edges:    edges,
		chats:    chats,
	}
}

func (s *nodeService) CreateNode(ctx context.Context, req types.CreateNodeRequest) (*types.Node, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Label) == "" {
		return nil, fmt.Errorf("%w: label required", types.ErrInvalidInput)
	}
	status, err := types.ParseNodeStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UnixNano()
	node := &types.Node{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Label:       req.Label,
		Description: req.Description,
		Status:      status,
		Owner:       req.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Position != nil {
		node.Position = *req.Position
	}

	var parent *types.Node
	if req.ParentID != "" {
		parent, err = s.sameProjectNode(ctx, req.ParentID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		node.ParentID = &parent.ID
	}

	if err := s.nodes.CreateNode(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to create node: %w", err)
	}
	if parent != nil {
		if err := s.linkParent(ctx, parent, node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (s *nodeService) GetNode(ctx context.Context, id string) (*types.Node, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: node id required", types.ErrInvalidInput)
	}
	return s.nodes.GetNode(ctx, id)
}

func (s *nodeService) ListNodes(ctx context.Context, projectID string) ([]*types.Node, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	return s.nodes.ListNodesByProject(ctx, projectID)
}

func (s *nodeService) UpdateNode(ctx context.Context, id string, req types.UpdateNodeRequest) (*types.Node, error) {
	node, err := s.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Label != nil {
		if strings.TrimSpace(*req.Label) == "" {
			return nil, fmt.Errorf("%w: label required", types.ErrInvalidInput)
		}
		node.Label = *req.Label
	}
	if req.Description != nil {
		node.Description = *req.Description
	}
	if req.Status != nil {
		status, err := types.ParseNodeStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		node.Status = status
	}
	if req.Owner != nil {
		node.Owner = req.Owner
	}

	oldParentID := ""
	if node.ParentID != nil {
		oldParentID = *node.ParentID
	}
	var newParent *types.Node
	if req.ParentID != nil {
		if *req.ParentID == "" {
			node.ParentID = nil
		} else {
			newParent, err = s.sameProjectNode(ctx, *req.ParentID, node.ProjectID)
			if err != nil {
				return nil, err
			}
			if err := s.checkNoCycle(ctx, node, newParent); err != nil {
				return nil, err
			}
			node.ParentID = &newParent.ID
		}
	}

	node.UpdatedAt = time.Now().UnixNano()
	if err := s.nodes.UpdateNode(ctx, node); err != nil {
		return nil, err
	}
	if req.ParentID != nil && oldParentID != "" && oldParentID != *req.ParentID {
		if err := s.unlinkParent(ctx, oldParentID, node.ID); err != nil {
			return nil, err
		}
	}
	if newParent != nil {
		if err := s.linkParent(ctx, newParent, node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (s *nodeService) MoveNode(ctx context.Context, id string, position types.Position) (*types.Node, error) {
	node, err := s.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	node.Position = position
	node.UpdatedAt = time.Now().UnixNano()
	if err := s.nodes.UpdateNode(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *nodeService) UpdateStatus(ctx context.Context, id string, status string) (*types.Node, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status required", types.ErrInvalidInput)
	}
	return s.UpdateNode(ctx, id, types.UpdateNodeRequest{Status: &status})
}

func (s *nodeService) Children(ctx context.Context, id string) ([]*types.Node, error) {
	if _, err := s.GetNode(ctx, id); err != nil {
		return nil, err
	}
	return s.nodes.ListChildren(ctx, id)
}

func (s *nodeService) DeleteNode(ctx context.Context, id string) error {
	node, err := s.GetNode(ctx, id)
	if err != nil {
		return err
	}
	projectNodes, err := s.nodes.ListNodesByProject(ctx, node.ProjectID)
	if err != nil {
		return err
	}
	ids := subtreeIDs(node.ID, projectNodes)

	if err := s.chats.DeleteMessagesByNodes(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete chat history: %w", err)
	}
	if err := s.edges.DeleteEdgesByNodes(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete edges: %w", err)
	}
	if err := s.nodes.DeleteNodes(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete nodes: %w", err)
	}
	return nil
}

func (s *nodeService) sameProjectNode(ctx context.Context, id, projectID string) (*types.Node, error) {
	node, err := s.nodes.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	if node.ProjectID != projectID {
		return nil, fmt.Errorf("%w: node %s belongs to another project", types.ErrInvalidInput, id)
	}
	return node, nil
}

// checkNoCycle walks up from newParent and fails if it reaches node.
func (s *nodeService) checkNoCycle(ctx context.Context, node, newParent *types.Node) error {
	projectNodes, err := s.nodes.ListNodesByProject(ctx, node.ProjectID)
	if err != nil {
		return err
	}
	parents := make(map[string]string, len(projectNodes))
	for _, n := range projectNodes {
		if n.ParentID != nil {
			parents[n.ID] = *n.ParentID
		}
	}
	for current, steps := newParent.ID, 0; current != ""; current, steps = parents[current], steps+1 {
		if current == node.ID || steps > len(projectNodes) {
			return fmt.Errorf("%w: moving %s under %s would create a cycle", types.ErrInvalidInput, node.ID, newParent.ID)
		}
	}
	return nil
}

// linkParent records the parent -> child edge unless it already exists.
func (s *nodeService) linkParent(ctx context.Context, parent, child *types.Node) error {
	_, err := s.edges.FindEdge(ctx, parent.ID, child.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("failed to look up parent edge: %w", err)
	}
	edge := &types.Edge{
		ID:        uuid.NewString(),
		ProjectID: child.ProjectID,
		SourceID:  parent.ID,
		TargetID:  child.ID,
		CreatedAt: time.Now().UnixNano(),
	}
	if err := s.edges.CreateEdge(ctx, edge); err != nil {
		return fmt.Errorf("failed to create parent edge: %w", err)
	}
	return nil
}

func (s *nodeService) unlinkParent(ctx context.Context, parentID, childID string) error {
	edge, err := s.edges.FindEdge(ctx, parentID, childID)
	if errors.Is(err, types.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.edges.DeleteEdge(ctx, edge.ID)
}

// subtreeIDs returns rootID followed by all of its descendants in nodes.
func subtreeIDs(rootID string, nodes []*types.Node) []string {
	children := make(map[string][]string)
	for _, n := range nodes {
		if n.ParentID != nil {
			children[*n.ParentID] = append(children[*n.ParentID], n.ID)
		}
	}
	ids := []string{rootID}
	seen := map[string]bool{rootID: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids
}
