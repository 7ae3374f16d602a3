/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/mindmap-be/service"
	"github.com/tieubaoca/mindmap-be/types"
)

var importKnowledgeCmd = &cobra.Command{
	Use:   "import-knowledge <file-or-directory>...",
	Short: "Import knowledge documents into a project",
	Long: `Uploads pdf, txt, md and docx files into the knowledge base of a project.
Directories are walked recursively; unsupported files are skipped.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectID, _ := cmd.Flags().GetString("project")
		title, _ := cmd.Flags().GetString("title")
		if projectID == "" {
			log.Fatal("--project is required")
		}

		ctx := context.Background()
		a, err := newApp(ctx, loadConfig())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.Close()

		paths, err := collectKnowledgeFiles(args)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		if len(paths) != 1 {
			title = ""
		}

		imported := 0
		for _, path := range paths {
			doc, err := importFile(ctx, a.knowledge, projectID, title, path)
			if err != nil {
				a.logger.Error("import failed", "file", path, "error", err)
				continue
			}
			imported++
			fmt.Printf("%s\t%s\t%s\n", doc.ID, doc.FileType, doc.Title)
		}
		fmt.Printf("Imported %d of %d files\n", imported, len(paths))
	},
}

func init() {
	rootCmd.AddCommand(importKnowledgeCmd)
	importKnowledgeCmd.Flags().String("project", "", "id of the project that owns the documents")
	importKnowledgeCmd.Flags().String("title", "", "document title, only used when importing a single file")
}

// collectKnowledgeFiles expands directories into the supported files they contain.
func collectKnowledgeFiles(args []string) ([]string, error) {
	paths := make([]string, 0)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, err := service.FileTypeFromName(path); err == nil {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func importFile(ctx context.Context, knowledge service.KnowledgeService, projectID, title, path string) (*types.KnowledgeDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return knowledge.Upload(ctx, projectID, title, filepath.Base(path), content)
}
