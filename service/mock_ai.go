package service

import (
	"fmt"
	"strings"

	"github.com/tieubaoca/mindmap-be/types"
)

var (
	breakdownKeywords = []string{"break", "task", "sub", "decompose"}
	contextKeywords   = []string{"context", "search", "what", "explain"}
)

const breakdownTemplate = `**Breaking this down into subtasks:**

1. 📋 **Analyze Requirements** - Understand scope and constraints
2. 🏗️ **Design Solution** - Sketch architecture or approach
3. 🔨 **Implement Core** - Build minimum viable piece
4. 🧪 **Test & Refine** - Verify and improve quality
5. 📝 **Document** - Capture learnings and decisions

Would you like to create these as sub-nodes?`

const contextTemplate = `I'm analyzing the context for this node.

Based on your question, here are relevant patterns and approaches:
- Consider breaking this into smaller, testable components
- Focus on clear interfaces between sections
- Document assumptions as you go`

const helpTemplate = `I'm here to help with **%s**.

I can assist with:
- 🔨 Breaking work into smaller subtasks
- 📚 Finding relevant information in your knowledge base
- 💡 Suggesting next steps
- 📝 Generating documentation

What would you like help with?`

// MockResponse answers without any model. The first matching keyword rule
// wins; every message gets an answer. node may be nil.
func MockResponse(message string, node *types.Node, docs []*types.KnowledgeDocument) *types.AIResponse {
	lowerMsg := strings.ToLower(message)

	var text string
	switch {
	case containsAny(lowerMsg, breakdownKeywords):
		text = breakdownTemplate
	case containsAny(lowerMsg, contextKeywords):
		text = contextTemplate
	default:
		label := "this task"
		if node != nil {
			label = node.Label
		}
		text = fmt.Sprintf(helpTemplate, label)
	}

	titles := DocumentTitles(docs)
	if len(titles) > 0 {
		text += "\n\n📚 **Using knowledge from:**\n- " + strings.Join(titles, "\n- ")
	}

	return &types.AIResponse{
		Message:          text,
		Role:             types.CHAT_ROLE_AI,
		Source:           types.CHAT_SOURCE_MOCK,
		KnowledgeUsed:    len(titles) > 0,
		KnowledgeSources: titles,
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
