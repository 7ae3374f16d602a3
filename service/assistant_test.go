package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/types"
)

type mockModel struct {
	mock.Mock
}

func (m *mockModel) Identifier() string {
	return "test-model"
}

func (m *mockModel) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type panicModel struct{}

func (panicModel) Identifier() string { return "panic-model" }

func (panicModel) Complete(ctx context.Context, prompt string) (string, error) {
	panic("client exploded")
}

type blockingModel struct{}

func (blockingModel) Identifier() string { return "slow-model" }

func (blockingModel) Complete(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", fmt.Errorf("%w: %v", types.ErrModel, ctx.Err())
}

func newAssistantFixture(t *testing.T) (*repository.MemoryStore, *KnowledgeSearchService, *types.Node) {
	t.Helper()
	store := repository.NewMemoryStore()
	require.NoError(t, store.CreateDocument(context.Background(), &types.KnowledgeDocument{
		ID: "d1", ProjectID: "p1", Title: "Cache Design", FileType: types.FILE_TYPE_MD,
		ContentPreview: "redis cache notes", FullText: "redis cache notes about cache eviction",
	}))
	node := &types.Node{ID: "n1", ProjectID: "p1", Label: "Cache layer", Status: types.NODE_STATUS_IN_PROGRESS}
	return store, NewKnowledgeSearchService(store), node
}

func TestBuildPrompt(t *testing.T) {
	node := &types.Node{Label: "Auth", Status: types.NODE_STATUS_COMPLETED}
	prompt := BuildPrompt("what next?", node, "## Relevant Knowledge Base:\n\n")

	assert.Contains(t, prompt, "The user is working on: **Auth**")
	assert.Contains(t, prompt, "Description: No description provided")
	assert.Contains(t, prompt, "Status: Completed")
	assert.Contains(t, prompt, "## Relevant Knowledge Base:")
	assert.True(t, strings.HasSuffix(prompt, "\n\nUser: what next?"))
}

func TestGenerateResponse_NoModelUsesMock(t *testing.T) {
	_, search, node := newAssistantFixture(t)
	assistant := NewAssistantService(search, nil, 0, nil)

	res := assistant.GenerateResponse(context.Background(), "explain the cache", node, true)

	assert.Equal(t, types.CHAT_SOURCE_MOCK, res.Source)
	assert.Equal(t, types.CHAT_SOURCE_MOCK, assistant.Source())
	assert.True(t, res.KnowledgeUsed)
	assert.Equal(t, []string{"Cache Design"}, res.KnowledgeSources)
	assert.True(t, strings.HasPrefix(res.Message, contextTemplate))
}

func TestGenerateResponse_ModelSuccess(t *testing.T) {
	_, search, node := newAssistantFixture(t)
	model := new(mockModel)
	model.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "**Cache Design** (md):\nredis cache notes") &&
			strings.HasSuffix(prompt, "User: how big should the cache be?")
	})).Return("Start with 1GB.", nil).Once()

	assistant := NewAssistantService(search, model, time.Second, nil)
	res := assistant.GenerateResponse(context.Background(), "how big should the cache be?", node, true)

	assert.Equal(t, "Start with 1GB.", res.Message)
	assert.Equal(t, "test-model", res.Source)
	assert.True(t, res.KnowledgeUsed)
	assert.Equal(t, []string{"Cache Design"}, res.KnowledgeSources)
	model.AssertExpectations(t)
}

func TestGenerateResponse_WithoutKnowledge(t *testing.T) {
	_, search, node := newAssistantFixture(t)
	model := new(mockModel)
	model.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return !strings.Contains(prompt, "Relevant Knowledge Base")
	})).Return("ok", nil).Once()

	assistant := NewAssistantService(search, model, 0, nil)
	res := assistant.GenerateResponse(context.Background(), "cache?", node, false)

	assert.Equal(t, "ok", res.Message)
	assert.False(t, res.KnowledgeUsed)
	assert.Empty(t, res.KnowledgeSources)
	model.AssertExpectations(t)
}

func TestGenerateResponse_ModelFailureFallsBack(t *testing.T) {
	_, search, node := newAssistantFixture(t)
	model := new(mockModel)
	model.On("Complete", mock.Anything, mock.Anything).Return("", fmt.Errorf("%w: quota exceeded", types.ErrModel))

	withModel := NewAssistantService(search, model, 0, nil)
	withoutModel := NewAssistantService(search, nil, 0, nil)

	got := withModel.GenerateResponse(context.Background(), "break the cache work down", node, true)
	want := withoutModel.GenerateResponse(context.Background(), "break the cache work down", node, true)

	assert.Equal(t, want, got)
	assert.Equal(t, types.CHAT_SOURCE_MOCK, got.Source)
}

func TestGenerateResponse_FallbackDropsNodeLabel(t *testing.T) {
	_, search, node := newAssistantFixture(t)
	model := new(mockModel)
	model.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("boom"))

	res := NewAssistantService(search, model, 0, nil).GenerateResponse(context.Background(), "hi", node, false)
	assert.Contains(t, res.Message, "**this task**")
}

func TestGenerateResponse_PanicAndTimeoutFallBack(t *testing.T) {
	_, search, node := newAssistantFixture(t)

	res := NewAssistantService(search, panicModel{}, 0, nil).GenerateResponse(context.Background(), "hi", node, true)
	assert.Equal(t, types.CHAT_SOURCE_MOCK, res.Source)

	start := time.Now()
	res = NewAssistantService(search, blockingModel{}, 20*time.Millisecond, nil).GenerateResponse(context.Background(), "hi", node, true)
	assert.Equal(t, types.CHAT_SOURCE_MOCK, res.Source)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewLanguageModel(t *testing.T) {
	model, err := NewLanguageModel(context.Background(), AssistantConfig{Provider: PROVIDER_GEMINI})
	require.NoError(t, err)
	assert.Nil(t, model)

	model, err = NewLanguageModel(context.Background(), AssistantConfig{Provider: PROVIDER_OPENAI, Credential: "INSERT API KEY"})
	require.NoError(t, err)
	assert.Nil(t, model)

	for _, credential := range []string{",", " , ,"} {
		model, err = NewLanguageModel(context.Background(), AssistantConfig{Provider: PROVIDER_OPENAI, Credential: credential})
		require.NoError(t, err, credential)
		assert.Nil(t, model, credential)
	}

	model, err = NewLanguageModel(context.Background(), AssistantConfig{Provider: PROVIDER_OPENAI, Credential: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, OPENAI_SOURCE, model.Identifier())

	_, err = NewLanguageModel(context.Background(), AssistantConfig{Provider: "other", Credential: "k"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestAssistantConfig_APIKeys(t *testing.T) {
	cfg := AssistantConfig{Credential: " a, b ,,c "}
	assert.Equal(t, []string{"a", "b", "c"}, cfg.apiKeys())
	assert.True(t, cfg.Enabled())

	assert.False(t, AssistantConfig{Credential: ","}.Enabled())
	assert.False(t, AssistantConfig{Credential: " INSERT API KEY "}.Enabled())
}
