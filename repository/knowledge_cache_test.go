package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/mindmap-be/types"
)

func setupCachedRepo(t *testing.T) (*CachedKnowledgeRepo, *MemoryStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	inner := NewMemoryStore()
	return NewCachedKnowledgeRepo(inner, client, time.Minute, nil), inner, mr
}

func testDocument(id, projectID string, createdAt int64) *types.KnowledgeDocument {
	return &types.KnowledgeDocument{
		ID:             id,
		ProjectID:      projectID,
		Title:          "Doc " + id,
		FileType:       types.FILE_TYPE_TXT,
		ContentPreview: "preview " + id,
		FullText:       "full text of " + id,
		CreatedAt:      createdAt,
	}
}

func TestCachedKnowledgeRepo_ListPopulatesCache(t *testing.T) {
	repo, _, mr := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateDocument(ctx, testDocument("d1", "p1", 1)))
	require.NoError(t, repo.CreateDocument(ctx, testDocument("d2", "p1", 2)))

	docs, err := repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.True(t, mr.Exists(knowledgeProjectPrefix+"p1"))
	assert.Equal(t, time.Minute, mr.TTL(knowledgeProjectPrefix+"p1"))

	cached, err := repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, docs, cached)
	assert.Equal(t, "full text of d1", cached[0].FullText)
}

func TestCachedKnowledgeRepo_ServesFromCache(t *testing.T) {
	repo, inner, _ := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateDocument(ctx, testDocument("d1", "p1", 1)))
	_, err := repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)

	// Bypass the cache so the snapshot goes stale.
	require.NoError(t, inner.CreateDocument(ctx, testDocument("d2", "p1", 2)))

	docs, err := repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestCachedKnowledgeRepo_WritesInvalidate(t *testing.T) {
	repo, _, mr := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateDocument(ctx, testDocument("d1", "p1", 1)))
	_, err := repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, repo.CreateDocument(ctx, testDocument("d2", "p1", 2)))
	assert.False(t, mr.Exists(knowledgeProjectPrefix+"p1"))

	docs, err := repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	require.NoError(t, repo.DeleteDocument(ctx, "d1"))
	docs, err = repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d2", docs[0].ID)

	require.NoError(t, repo.DeleteDocumentsByProject(ctx, "p1"))
	docs, err = repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCachedKnowledgeRepo_FallsBackWhenRedisDown(t *testing.T) {
	repo, _, mr := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateDocument(ctx, testDocument("d1", "p1", 1)))
	mr.Close()

	docs, err := repo.ListDocumentsByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestCachedKnowledgeRepo_DeleteMissing(t *testing.T) {
	repo, _, _ := setupCachedRepo(t)

	err := repo.DeleteDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
