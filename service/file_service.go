package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tieubaoca/mindmap-be/types"
	"github.com/tieubaoca/mindmap-be/utils"
)

// FileService keeps uploaded knowledge files on local disk.
type FileService struct {
	uploadDir string
}

func NewFileService(uploadDir string) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{
		uploadDir: uploadDir,
	}, nil
}

// Save stores src under a timestamped name derived from originalName.
func (s *FileService) Save(originalName string, src io.Reader) (string, error) {
	return utils.WriteFileWithTimestamp(s.uploadDir, originalName, src)
}

// Path resolves a stored file name inside the upload directory.
func (s *FileService) Path(storedName string) string {
	return filepath.Join(s.uploadDir, filepath.Base(storedName))
}

func (s *FileService) Open(storedName string) (*os.File, error) {
	f, err := os.Open(s.Path(storedName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: file %s", types.ErrNotFound, storedName)
	}
	return f, err
}

func (s *FileService) Remove(storedName string) error {
	err := os.Remove(s.Path(storedName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", storedName, err)
	}
	return nil
}
