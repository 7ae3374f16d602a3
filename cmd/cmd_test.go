package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/mindmap-be/config"
	"github.com/tieubaoca/mindmap-be/types"
)

func TestCollectKnowledgeFiles(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(nested, 0755))
	for _, name := range []string{"a.md", "b.exe", filepath.Join("nested", "c.pdf")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	single := filepath.Join(t.TempDir(), "single.txt")
	require.NoError(t, os.WriteFile(single, []byte("x"), 0644))

	paths, err := collectKnowledgeFiles([]string{dir, single})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(nested, "c.pdf"),
		single,
	}, paths)

	_, err = collectKnowledgeFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestNewApp_MemoryStorage(t *testing.T) {
	cfg := &config.Config{
		Port:      "0",
		UploadDir: t.TempDir(),
		Storage:   config.STORAGE_MEMORY,
		LogLevel:  "error",
		AI:        config.AIConfig{Provider: "gemini"},
	}
	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, types.CHAT_SOURCE_MOCK, a.assistant.Source())

	ctx := context.Background()
	project, err := a.projects.CreateProject(ctx, types.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("deploy checklist"), 0644))
	doc, err := importFile(ctx, a.knowledge, project.ID, "", path)
	require.NoError(t, err)
	assert.Equal(t, "notes", doc.Title)

	found, err := a.knowledge.Search(ctx, project.ID, "checklist")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
