package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tieubaoca/mindmap-be/types"
)

var _ KnowledgeRepo = (*CachedKnowledgeRepo)(nil)

const knowledgeProjectPrefix = "knowledge:project:"

// cachedDocument carries the full text, which the API form of a document hides.
type cachedDocument struct {
	ID             string         `json:"id"`
	ProjectID      string         `json:"project_id"`
	Title          string         `json:"title"`
	FileType       types.FileType `json:"file_type"`
	FileName       string         `json:"file_name"`
	ContentPreview string         `json:"content_preview"`
	FullText       string         `json:"full_text"`
	CreatedAt      int64          `json:"created_at"`
}

// CachedKnowledgeRepo keeps a Redis snapshot of each project's document list
// in front of another KnowledgeRepo. Writes invalidate the project key.
// Redis failures are logged and the inner repo is used directly.
type CachedKnowledgeRepo struct {
	inner  KnowledgeRepo
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedKnowledgeRepo(inner KnowledgeRepo, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedKnowledgeRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedKnowledgeRepo{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedKnowledgeRepo) CreateDocument(ctx context.Context, doc *types.KnowledgeDocument) error {
	if err := r.inner.CreateDocument(ctx, doc); err != nil {
		return err
	}
	r.invalidate(ctx, doc.ProjectID)
	return nil
}

func (r *CachedKnowledgeRepo) GetDocument(ctx context.Context, id string) (*types.KnowledgeDocument, error) {
	return r.inner.GetDocument(ctx, id)
}

func (r *CachedKnowledgeRepo) ListDocumentsByProject(ctx context.Context, projectID string) ([]*types.KnowledgeDocument, error) {
	key := knowledgeProjectPrefix + projectID
	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		docs, decodeErr := decodeDocuments(data)
		if decodeErr == nil {
			return docs, nil
		}
		r.logger.Warn("discarding unreadable knowledge cache entry", "project_id", projectID, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("knowledge cache read failed", "project_id", projectID, "error", err)
	}

	docs, err := r.inner.ListDocumentsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	encoded, err := encodeDocuments(docs)
	if err != nil {
		return nil, err
	}
	if err := r.client.Set(ctx, key, encoded, r.ttl).Err(); err != nil {
		r.logger.Warn("knowledge cache write failed", "project_id", projectID, "error", err)
	}
	return docs, nil
}

func (r *CachedKnowledgeRepo) DeleteDocument(ctx context.Context, id string) error {
	doc, err := r.inner.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := r.inner.DeleteDocument(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, doc.ProjectID)
	return nil
}

func (r *CachedKnowledgeRepo) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	if err := r.inner.DeleteDocumentsByProject(ctx, projectID); err != nil {
		return err
	}
	r.invalidate(ctx, projectID)
	return nil
}

func (r *CachedKnowledgeRepo) invalidate(ctx context.Context, projectID string) {
	if err := r.client.Del(ctx, knowledgeProjectPrefix+projectID).Err(); err != nil {
		r.logger.Warn("knowledge cache invalidation failed", "project_id", projectID, "error", err)
	}
}

func encodeDocuments(docs []*types.KnowledgeDocument) ([]byte, error) {
	cached := make([]cachedDocument, 0, len(docs))
	for _, d := range docs {
		cached = append(cached, cachedDocument{
			ID:             d.ID,
			ProjectID:      d.ProjectID,
			Title:          d.Title,
			FileType:       d.FileType,
			FileName:       d.FileName,
			ContentPreview: d.ContentPreview,
			FullText:       d.FullText,
			CreatedAt:      d.CreatedAt,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal knowledge snapshot: %w", err)
	}
	return data, nil
}

func decodeDocuments(data []byte) ([]*types.KnowledgeDocument, error) {
	var cached []cachedDocument
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	docs := make([]*types.KnowledgeDocument, 0, len(cached))
	for _, c := range cached {
		docs = append(docs, &types.KnowledgeDocument{
			ID:             c.ID,
			ProjectID:      c.ProjectID,
			Title:          c.Title,
			FileType:       c.FileType,
			FileName:       c.FileName,
			ContentPreview: c.ContentPreview,
			FullText:       c.FullText,
			CreatedAt:      c.CreatedAt,
		})
	}
	return docs, nil
}
