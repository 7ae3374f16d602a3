package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/types"
	"github.com/tieubaoca/mindmap-be/utils"
)

const PREVIEW_LENGTH = 500

type KnowledgeService interface {
	// Upload stores the file, extracts its text and records the document.
	// Extraction failures are stored as placeholder text rather than returned.
	Upload(ctx context.Context, projectID, title, fileName string, content []byte) (*types.KnowledgeDocument, error)
	ListDocuments(ctx context.Context, projectID string) ([]*types.KnowledgeDocument, error)
	GetDocument(ctx context.Context, id string) (*types.KnowledgeDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	Search(ctx context.Context, projectID, query string) ([]*types.KnowledgeDocument, error)
}

type knowledgeService struct {
	projects  repository.ProjectRepo
	knowledge repository.KnowledgeRepo
	files     *FileService
	extractor *TextExtractor
	logger    *slog.Logger
}

func NewKnowledgeService(
	projects repository.ProjectRepo,
	knowledge repository.KnowledgeRepo,
	files *FileService,
	extractor *TextExtractor,
	logger *slog.Logger,
) KnowledgeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &knowledgeService{
		projects:  projects,
		knowledge: knowledge,
		files:     files,
		extractor: extractor,
		logger:    logger,
	}
}

// FileTypeFromName maps a file extension to a supported knowledge file type.
func FileTypeFromName(fileName string) (types.FileType, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	switch types.FileType(ext) {
	case types.FILE_TYPE_PDF, types.FILE_TYPE_TXT, types.FILE_TYPE_MD, types.FILE_TYPE_DOCX:
		return types.FileType(ext), nil
	}
	return "", fmt.Errorf("%w: unsupported file type %q", types.ErrInvalidInput, filepath.Ext(fileName))
}

func (s *knowledgeService) Upload(ctx context.Context, projectID, title, fileName string, content []byte) (*types.KnowledgeDocument, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	if fileName == "" {
		return nil, fmt.Errorf("%w: file required", types.ErrInvalidInput)
	}
	fileType, err := FileTypeFromName(fileName)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = utils.GetFileNameWithoutExt(fileName)
	}

	storedName, err := s.files.Save(fileName, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, fileType, s.files.Path(storedName), content)
	if err != nil {
		s.logger.Warn("text extraction failed", "file", storedName, "file_type", fileType, "error", err)
		text = fmt.Sprintf("[Error extracting content: %v]", err)
	}

	doc := &types.KnowledgeDocument{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		Title:          title,
		FileType:       fileType,
		FileName:       storedName,
		ContentPreview: utils.TruncateRunes(text, PREVIEW_LENGTH),
		FullText:       text,
		CreatedAt:      time.Now().UnixNano(),
	}
	if err := s.knowledge.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save knowledge document: %w", err)
	}
	s.logger.Info("knowledge uploaded", "id", doc.ID, "project_id", projectID, "file_type", fileType, "chars", len([]rune(text)))
	return doc, nil
}

func (s *knowledgeService) ListDocuments(ctx context.Context, projectID string) ([]*types.KnowledgeDocument, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	return s.knowledge.ListDocumentsByProject(ctx, projectID)
}

func (s *knowledgeService) GetDocument(ctx context.Context, id string) (*types.KnowledgeDocument, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: knowledge id required", types.ErrInvalidInput)
	}
	return s.knowledge.GetDocument(ctx, id)
}

func (s *knowledgeService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := s.knowledge.DeleteDocument(ctx, id); err != nil {
		return err
	}
	if err := s.files.Remove(doc.FileName); err != nil {
		s.logger.Warn("failed to remove knowledge file", "file", doc.FileName, "error", err)
	}
	return nil
}

func (s *knowledgeService) Search(ctx context.Context, projectID, query string) ([]*types.KnowledgeDocument, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id required", types.ErrInvalidInput)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query required", types.ErrInvalidInput)
	}
	docs, err := s.knowledge.ListDocumentsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return SearchByText(docs, query, TextSearchTopK), nil
}
