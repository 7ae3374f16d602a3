/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/mindmap-be/utils"
)

var searchKnowledgeCmd = &cobra.Command{
	Use:   "search-knowledge <query>",
	Short: "Search the knowledge base of a project",
	Long:  `Ranks the knowledge documents of a project by occurrences of the query and prints the best matches`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			log.Fatal("--project is required")
		}

		ctx := context.Background()
		a, err := newApp(ctx, loadConfig())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.Close()

		docs, err := a.knowledge.Search(ctx, projectID, strings.Join(args, " "))
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		if len(docs) == 0 {
			fmt.Println("No matching documents")
			return
		}
		for i, doc := range docs {
			preview := strings.ReplaceAll(utils.TruncateRunes(doc.ContentPreview, 80), "\n", " ")
			fmt.Printf("%d. %s (%s) [%s]\n   %s\n", i+1, doc.Title, doc.FileType, doc.ID, preview)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchKnowledgeCmd)
	searchKnowledgeCmd.Flags().String("project", "", "id of the project to search")
}
