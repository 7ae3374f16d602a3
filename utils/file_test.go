package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "my_notes__v2_.md", SanitizeFileName("my notes (v2).md"))
	assert.Equal(t, "plain-name_1.txt", SanitizeFileName("plain-name_1.txt"))
}

func TestTimestampedFileName(t *testing.T) {
	now := time.Unix(0, 1700000000000000000)
	assert.Equal(t, "OAuth_Notes_1700000000000000000.pdf", TimestampedFileName("/tmp/OAuth Notes.PDF", now))
}

func TestWriteFileWithTimestamp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	name, err := WriteFileWithTimestamp(dir, "notes.md", strings.NewReader("# Notes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "notes_"))
	assert.True(t, strings.HasSuffix(name, ".md"))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "# Notes", string(data))
}

func TestGetFileNameWithoutExt(t *testing.T) {
	assert.Equal(t, "report", GetFileNameWithoutExt("/docs/report.pdf"))
	assert.Equal(t, "README", GetFileNameWithoutExt("README"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", TruncateRunes("héllo", 4))
	assert.Equal(t, "short", TruncateRunes("short", 300))
	assert.Equal(t, "", TruncateRunes("anything", 0))
}
