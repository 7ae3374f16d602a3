package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/types"
	"github.com/tieubaoca/mindmap-be/utils"
)

const (
	// NodeContextTopK is the number of documents folded into an assistant prompt.
	NodeContextTopK = 3
	// RelevantKnowledgeTopK is used by the relevant-knowledge lookup of a node.
	RelevantKnowledgeTopK = 5
	// TextSearchTopK is used by the free text knowledge base search.
	TextSearchTopK = 10

	knowledgeContextHeader = "## Relevant Knowledge Base:\n\n"
	contextFallbackLength  = 300
)

// Word tokens are runs of letters, digits and underscores in any script.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

type scoredDocument struct {
	doc   *types.KnowledgeDocument
	score int
}

// KnowledgeSearchService selects the documents of a project that are relevant
// to a node or a query. Scoring counts literal substring occurrences, so
// "task" also matches inside "subtasks".
type KnowledgeSearchService struct {
	repo repository.KnowledgeRepo
}

func NewKnowledgeSearchService(repo repository.KnowledgeRepo) *KnowledgeSearchService {
	return &KnowledgeSearchService{
		repo: repo,
	}
}

// Search ranks the documents of the node's project against query, or against
// the node's label and description when query is empty.
func (s *KnowledgeSearchService) Search(ctx context.Context, node *types.Node, query string, topK int) ([]*types.KnowledgeDocument, error) {
	requirePositive(topK)
	docs, err := s.repo.ListDocumentsByProject(ctx, node.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge for project %s: %w", node.ProjectID, err)
	}
	if len(docs) == 0 {
		return []*types.KnowledgeDocument{}, nil
	}
	searchText := query
	if searchText == "" {
		searchText = strings.ToLower(node.Label + " " + node.Description)
	}
	return RankDocuments(docs, searchText, topK), nil
}

// RankDocuments scores every document by the occurrences of each word token of
// searchText in its text and returns at most topK documents with a positive
// score, highest first. Equal scores keep their input order.
func RankDocuments(docs []*types.KnowledgeDocument, searchText string, topK int) []*types.KnowledgeDocument {
	requirePositive(topK)
	tokens := wordPattern.FindAllString(strings.ToLower(searchText), -1)
	return rank(docs, topK, func(text string) int {
		score := 0
		for _, token := range tokens {
			score += strings.Count(text, token)
		}
		return score
	})
}

// SearchByText scores documents by occurrences of the whole lowercased query.
func SearchByText(docs []*types.KnowledgeDocument, rawQuery string, topK int) []*types.KnowledgeDocument {
	requirePositive(topK)
	query := strings.ToLower(rawQuery)
	return rank(docs, topK, func(text string) int {
		if query == "" {
			return 0
		}
		return strings.Count(text, query)
	})
}

func rank(docs []*types.KnowledgeDocument, topK int, score func(text string) int) []*types.KnowledgeDocument {
	scored := make([]scoredDocument, 0, len(docs))
	for _, doc := range docs {
		if s := score(searchableText(doc)); s > 0 {
			scored = append(scored, scoredDocument{doc: doc, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	results := make([]*types.KnowledgeDocument, 0, len(scored))
	for _, sd := range scored {
		results = append(results, sd.doc)
	}
	return results
}

func searchableText(doc *types.KnowledgeDocument) string {
	if doc.FullText != "" {
		return strings.ToLower(doc.FullText)
	}
	return strings.ToLower(doc.ContentPreview)
}

func requirePositive(topK int) {
	if topK <= 0 {
		panic(fmt.Sprintf("knowledge search: topK must be positive, got %d", topK))
	}
}

// FormatContext renders documents as a prompt section. No documents, no section.
func FormatContext(docs []*types.KnowledgeDocument) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(knowledgeContextHeader)
	for _, doc := range docs {
		preview := doc.ContentPreview
		if preview == "" {
			preview = utils.TruncateRunes(doc.FullText, contextFallbackLength)
		}
		fmt.Fprintf(&b, "**%s** (%s):\n%s\n\n", doc.Title, doc.FileType, preview)
	}
	return b.String()
}

// DocumentTitles returns the titles of docs in order.
func DocumentTitles(docs []*types.KnowledgeDocument) []string {
	titles := make([]string, 0, len(docs))
	for _, doc := range docs {
		titles = append(titles, doc.Title)
	}
	return titles
}
