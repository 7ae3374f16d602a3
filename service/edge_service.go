package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/types"
)

type EdgeService interface {
	// CreateEdge returns the existing edge when source -> target is already linked.
	CreateEdge(ctx context.Context, req types.CreateEdgeRequest) (*types.Edge, error)
	ListEdges(ctx context.Context, projectID string) ([]*types.Edge, error)
	DeleteEdge(ctx context.Context, id string) error
}

type edgeService struct {
	nodes repository.NodeRepo
	edges repository.EdgeRepo
}

func NewEdgeService(nodes repository.NodeRepo, edges repository.EdgeRepo) EdgeService {
	return &edgeService{
		nodes: nodes,
		edges: edges,
	}
}

func (s *edgeService) CreateEdge(ctx context.Context, req types.CreateEdgeRequest) (*types.Edge, error) {
	if req.ProjectID == "" || req.SourceID == "" || req.TargetID == "" {
		return nil, fmt.Errorf("%w: project, source and target required", types.ErrInvalidInput)
	}
	if req.SourceID == req.TargetID {
		return nil, fmt.Errorf("%w: an edge needs two different nodes", types.ErrInvalidInput)
	}
	for _, id := range []string{req.SourceID, req.TargetID} {
		node, err := s.nodes.GetNode(ctx, id)
		if err != nil {
			return nil, err
		}
		if node.ProjectID != req.ProjectID {
			return nil, fmt.Errorf("%w: node %s belongs to another project", types.ErrInvalidInput, id)
		}
	}

	existing, err := s.edges.FindEdge(ctx, req.SourceID, req.TargetID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	edge := &types.Edge{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		SourceID:  req.SourceID,
		TargetID:  req.TargetID,
		CreatedAt: time.Now().UnixNano(),
	}
	if err := s.edges.CreateEdge(ctx, edge); err != nil {
		return nil, fmt.Errorf("failed to create edge: %w", err)
	}
	return edge, nil
}

func (s *edgeService) ListEdges(ctx context.Context, projectID string) ([]*types.Edge, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	return s.edges.ListEdgesByProject(ctx, projectID)
}

func (s *edgeService) DeleteEdge(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: edge id required", types.ErrInvalidInput)
	}
	return s.edges.DeleteEdge(ctx, id)
}
