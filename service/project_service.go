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

type ProjectService interface {
	CreateProject(ctx context.Context, req types.CreateProjectRequest) (*types.Project, error)
	ListProjects(ctx context.Context) ([]*types.ProjectSummary, error)
	GetProject(ctx context.Context, id string) (*types.ProjectDetail, error)
	UpdateProject(ctx context.Context, id string, req types.UpdateProjectRequest) (*types.Project, error)
	// DeleteProject removes the project and everything it owns.
	DeleteProject(ctx context.Context, id string) error
}

type projectService struct {
	projects  repository.ProjectRepo
	nodes     repository.NodeRepo
	edges     repository.EdgeRepo
	knowledge repository.KnowledgeRepo
	chats     repository.ChatRepo
}

func NewProjectService(
	projects repository.ProjectRepo,
	nodes repository.NodeRepo,
	edges repository.EdgeRepo,
	knowledge repository.KnowledgeRepo,
	chats repository.ChatRepo,
) ProjectService {
	return &projectService{
		projects:  projects,
		nodes:     nodes,
		edges:     edges,
		knowledge: knowledge,
		chats:     chats,
	}
}

func (s *projectService) CreateProject(ctx context.Context, req types.CreateProjectRequest) (*types.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: project name required", types.ErrInvalidInput)
	}
	now := time.Now().UnixNano()
	project := &types.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]*types.ProjectSummary, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]*types.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		count, err := s.nodes.CountNodesByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &types.ProjectSummary{Project: *p, NodeCount: count})
	}
	return summaries, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*types.ProjectDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	nodes, err := s.nodes.ListNodesByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	edges, err := s.edges.ListEdgesByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.knowledge.ListDocumentsByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return &types.ProjectDetail{
		Project:   *project,
		Nodes:     nodes,
		Edges:     edges,
		Knowledge: docs,
	}, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id string, req types.UpdateProjectRequest) (*types.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: project name required", types.ErrInvalidInput)
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	project.UpdatedAt = time.Now().UnixNano()
	if err := s.projects.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	if _, err := s.projects.GetProject(ctx, id); err != nil {
		return err
	}
	nodes, err := s.nodes.ListNodesByProject(ctx, id)
	if err != nil {
		return err
	}
	nodeIDs := make([]string, 0, len(nodes))
	for _, n := range nodes {
		nodeIDs = append(nodeIDs, n.ID)
	}

	if err := s.chats.DeleteMessagesByNodes(ctx, nodeIDs); err != nil {
		return fmt.Errorf("failed to delete chat history: %w", err)
	}
	if err := s.edges.DeleteEdgesByProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete edges: %w", err)
	}
	if err := s.nodes.DeleteNodesByProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete nodes: %w", err)
	}
	if err := s.knowledge.DeleteDocumentsByProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete knowledge: %w", err)
	}
	return s.projects.DeleteProject(ctx, id)
}
