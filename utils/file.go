package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeFileName replaces every character outside [A-Za-z0-9._-] with '_'.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

// TimestampedFileName builds originalname_timestamp.extension from a file name.
func TimestampedFileName(originalName string, now time.Time) string {
	base := filepath.Base(originalName)
	ext := filepath.Ext(base)
	baseFileName := strings.TrimSuffix(base, ext)
	return SanitizeFileName(fmt.Sprintf("%s_%d%s", baseFileName, now.UnixNano(), strings.ToLower(ext)))
}

// WriteFileWithTimestamp copies src into uploadDir under a timestamped name
// and returns the stored file name.
func WriteFileWithTimestamp(uploadDir, originalName string, src io.Reader) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	destFileName := TimestampedFileName(originalName, time.Now())
	destFile, err := os.Create(filepath.Join(uploadDir, destFileName))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, src); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	return destFileName, nil
}

// GetFileNameWithoutExt extracts the file name without extension from a path.
func GetFileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
