package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/types"
)

type mindmapFixture struct {
	store    *repository.MemoryStore
	projects ProjectService
	nodes    NodeService
	edges    EdgeService
}

func newMindmapFixture() *mindmapFixture {
	store := repository.NewMemoryStore()
	return &mindmapFixture{
		store:    store,
		projects: NewProjectService(store, store, store, store, store),
		nodes:    NewNodeService(store, store, store, store),
		edges:    NewEdgeService(store, store),
	}
}

func (f *mindmapFixture) project(t *testing.T, name string) *types.Project {
	t.Helper()
	p, err := f.projects.CreateProject(context.Background(), types.CreateProjectRequest{Name: name})
	require.NoError(t, err)
	return p
}

func (f *mindmapFixture) node(t *testing.T, projectID, label, parentID string) *types.Node {
	t.Helper()
	n, err := f.nodes.CreateNode(context.Background(), types.CreateNodeRequest{
		ProjectID: projectID,
		Label:     label,
		ParentID:  parentID,
	})
	require.NoError(t, err)
	return n
}

func TestProjectService_CreateValidates(t *testing.T) {
	f := newMindmapFixture()
	_, err := f.projects.CreateProject(context.Background(), types.CreateProjectRequest{Name: "  "})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = f.projects.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestProjectService_ListWithNodeCounts(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	first := f.project(t, "first")
	f.project(t, "second")
	f.node(t, first.ID, "a", "")
	f.node(t, first.ID, "b", "")

	list, err := f.projects.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, int64(0), list[0].NodeCount)
	assert.Equal(t, int64(2), list[1].NodeCount)
}

func TestProjectService_UpdateAndDetail(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	root := f.node(t, p.ID, "root", "")
	f.node(t, p.ID, "child", root.ID)

	name := "renamed"
	updated, err := f.projects.UpdateProject(ctx, p.ID, types.UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	detail, err := f.projects.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", detail.Name)
	assert.Len(t, detail.Nodes, 2)
	assert.Len(t, detail.Edges, 1)
	assert.Empty(t, detail.Knowledge)
}

func TestProjectService_DeleteCascades(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	keep := f.project(t, "keep")
	root := f.node(t, p.ID, "root", "")
	f.node(t, p.ID, "child", root.ID)
	other := f.node(t, keep.ID, "other", "")
	require.NoError(t, f.store.CreateDocument(ctx, &types.KnowledgeDocument{ID: "d1", ProjectID: p.ID}))
	require.NoError(t, f.store.AppendMessage(ctx, &types.ChatMessage{ID: "m1", NodeID: root.ID}))
	require.NoError(t, f.store.AppendMessage(ctx, &types.ChatMessage{ID: "m2", NodeID: other.ID}))

	require.NoError(t, f.projects.DeleteProject(ctx, p.ID))

	_, err := f.projects.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	nodes, _ := f.store.ListNodesByProject(ctx, p.ID)
	assert.Empty(t, nodes)
	edges, _ := f.store.ListEdgesByProject(ctx, p.ID)
	assert.Empty(t, edges)
	docs, _ := f.store.ListDocumentsByProject(ctx, p.ID)
	assert.Empty(t, docs)
	msgs, _ := f.store.ListMessagesByNode(ctx, root.ID)
	assert.Empty(t, msgs)
	msgs, _ = f.store.ListMessagesByNode(ctx, other.ID)
	assert.Len(t, msgs, 1)
}

func TestNodeService_CreateDefaultsAndLinksParent(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	root := f.node(t, p.ID, "root", "")
	child := f.node(t, p.ID, "child", root.ID)

	assert.Equal(t, types.NODE_STATUS_NOT_STARTED, root.Status)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	edge, err := f.store.FindEdge(ctx, root.ID, child.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, edge.ProjectID)

	children, err := f.nodes.Children(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{child.ID}, []string{children[0].ID})
}

func TestNodeService_CreateValidates(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	other := f.project(t, "other")
	foreign := f.node(t, other.ID, "foreign", "")

	tests := []struct {
		name    string
		req     types.CreateNodeRequest
		wantErr error
	}{
		{"missing project id", types.CreateNodeRequest{Label: "x"}, types.ErrInvalidInput},
		{"missing label", types.CreateNodeRequest{ProjectID: p.ID}, types.ErrInvalidInput},
		{"bad status", types.CreateNodeRequest{ProjectID: p.ID, Label: "x", Status: "done"}, types.ErrInvalidInput},
		{"unknown project", types.CreateNodeRequest{ProjectID: "nope", Label: "x"}, types.ErrNotFound},
		{"unknown parent", types.CreateNodeRequest{ProjectID: p.ID, Label: "x", ParentID: "nope"}, types.ErrNotFound},
		{"parent in other project", types.CreateNodeRequest{ProjectID: p.ID, Label: "x", ParentID: foreign.ID}, types.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.nodes.CreateNode(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNodeService_UpdateReparentsAndRejectsCycles(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	a := f.node(t, p.ID, "a", "")
	b := f.node(t, p.ID, "b", a.ID)
	c := f.node(t, p.ID, "c", b.ID)

	_, err := f.nodes.UpdateNode(ctx, a.ID, types.UpdateNodeRequest{ParentID: &c.ID})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	_, err = f.nodes.UpdateNode(ctx, a.ID, types.UpdateNodeRequest{ParentID: &a.ID})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	moved, err := f.nodes.UpdateNode(ctx, c.ID, types.UpdateNodeRequest{ParentID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.ParentID)

	_, err = f.store.FindEdge(ctx, b.ID, c.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = f.store.FindEdge(ctx, a.ID, c.ID)
	assert.NoError(t, err)

	detach := ""
	moved, err = f.nodes.UpdateNode(ctx, c.ID, types.UpdateNodeRequest{ParentID: &detach})
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
	_, err = f.store.FindEdge(ctx, a.ID, c.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestNodeService_MoveAndStatus(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	n := f.node(t, p.ID, "n", "")

	moved, err := f.nodes.MoveNode(ctx, n.ID, types.Position{X: 10, Y: -4.5})
	require.NoError(t, err)
	assert.Equal(t, types.Position{X: 10, Y: -4.5}, moved.Position)

	updated, err := f.nodes.UpdateStatus(ctx, n.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, types.NODE_STATUS_COMPLETED, updated.Status)

	_, err = f.nodes.UpdateStatus(ctx, n.ID, "finished")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	_, err = f.nodes.MoveNode(ctx, "missing", types.Position{})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestNodeService_DeleteRemovesSubtree(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	root := f.node(t, p.ID, "root", "")
	mid := f.node(t, p.ID, "mid", root.ID)
	leaf := f.node(t, p.ID, "leaf", mid.ID)
	sibling := f.node(t, p.ID, "sibling", root.ID)
	require.NoError(t, f.store.AppendMessage(ctx, &types.ChatMessage{ID: "m1", NodeID: leaf.ID}))

	require.NoError(t, f.nodes.DeleteNode(ctx, mid.ID))

	nodes, err := f.nodes.ListNodes(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID, sibling.ID}, []string{nodes[0].ID, nodes[1].ID})
	assert.Len(t, nodes, 2)

	edges, err := f.edges.ListEdges(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, sibling.ID, edges[0].TargetID)

	msgs, _ := f.store.ListMessagesByNode(ctx, leaf.ID)
	assert.Empty(t, msgs)
}

func TestSubtreeIDs(t *testing.T) {
	a, b := "a", "b"
	nodes := []*types.Node{
		{ID: "a"},
		{ID: "b", ParentID: &a},
		{ID: "c", ParentID: &b},
		{ID: "d", ParentID: &a},
		{ID: "e"},
	}
	assert.Equal(t, []string{"a", "b", "d", "c"}, subtreeIDs("a", nodes))
	assert.Equal(t, []string{"e"}, subtreeIDs("e", nodes))
}

func TestEdgeService(t *testing.T) {
	f := newMindmapFixture()
	ctx := context.Background()
	p := f.project(t, "plan")
	other := f.project(t, "other")
	a := f.node(t, p.ID, "a", "")
	b := f.node(t, p.ID, "b", "")
	foreign := f.node(t, other.ID, "x", "")

	edge, err := f.edges.CreateEdge(ctx, types.CreateEdgeRequest{ProjectID: p.ID, SourceID: a.ID, TargetID: b.ID})
	require.NoError(t, err)

	again, err := f.edges.CreateEdge(ctx, types.CreateEdgeRequest{ProjectID: p.ID, SourceID: a.ID, TargetID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, edge.ID, again.ID)

	_, err = f.edges.CreateEdge(ctx, types.CreateEdgeRequest{ProjectID: p.ID, SourceID: a.ID, TargetID: a.ID})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	_, err = f.edges.CreateEdge(ctx, types.CreateEdgeRequest{ProjectID: p.ID, SourceID: a.ID, TargetID: foreign.ID})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	_, err = f.edges.CreateEdge(ctx, types.CreateEdgeRequest{ProjectID: p.ID, SourceID: a.ID, TargetID: "missing"})
	assert.ErrorIs(t, err, types.ErrNotFound)

	edges, err := f.edges.ListEdges(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	require.NoError(t, f.edges.DeleteEdge(ctx, edge.ID))
	assert.ErrorIs(t, f.edges.DeleteEdge(ctx, edge.ID), types.ErrNotFound)
}

type failingEdgeLookup struct {
	*repository.MemoryStore
	err error
}

func (r *failingEdgeLookup) FindEdge(ctx context.Context, sourceID, targetID string) (*types.Edge, error) {
	return nil, r.err
}

func TestNodeService_ParentEdgeLookupFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	storeErr := errors.New("connection reset")
	edges := &failingEdgeLookup{MemoryStore: store, err: storeErr}
	projects := NewProjectService(store, store, store, store, store)
	nodes := NewNodeService(store, store, edges, store)
	ctx := context.Background()

	project, err := projects.CreateProject(ctx, types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)
	root, err := nodes.CreateNode(ctx, types.CreateNodeRequest{ProjectID: project.ID, Label: "root"})
	require.NoError(t, err)

	_, err = nodes.CreateNode(ctx, types.CreateNodeRequest{ProjectID: project.ID, Label: "child", ParentID: root.ID})
	assert.ErrorIs(t, err, storeErr)

	list, err := store.ListEdgesByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
