package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiService_RotateAPIKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, err := NewGeminiService(ctx, []string{"key-a", "key-b"}, "")
	require.NoError(t, err)
	cancel()

	first := s.client
	require.NoError(t, s.rotateAPIKey())
	assert.Equal(t, 1, s.currentKey)
	assert.Same(t, first, s.previous)
	assert.NotSame(t, first, s.client)
	assert.NotNil(t, s.currentModel())

	second := s.client
	require.NoError(t, s.rotateAPIKey())
	assert.Equal(t, 0, s.currentKey)
	assert.Same(t, second, s.previous)

	assert.NoError(t, s.Close())
	assert.Nil(t, s.previous)
}

func TestNewGeminiService_RequiresKeys(t *testing.T) {
	_, err := NewGeminiService(context.Background(), nil, "")
	assert.Error(t, err)
}
