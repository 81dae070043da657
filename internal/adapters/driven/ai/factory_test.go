package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService_AutoWithoutKey(t *testing.T) {
	svc, err := NewEmbeddingService(Config{Provider: ProviderAuto})
	require.NoError(t, err)
	assert.Equal(t, "ollama", svc.ProviderName())
}

func TestNewEmbeddingService_AutoWithKey(t *testing.T) {
	svc, err := NewEmbeddingService(Config{Provider: ProviderAuto, GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini,ollama", svc.ProviderName())
}

func TestNewEmbeddingService_EmptyProviderDefaultsToAuto(t *testing.T) {
	svc, err := NewEmbeddingService(Config{})
	require.NoError(t, err)
	assert.Equal(t, "ollama", svc.ProviderName())
}

func TestNewEmbeddingService_PinnedGemini(t *testing.T) {
	svc, err := NewEmbeddingService(Config{Provider: ProviderGemini, GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", svc.ProviderName())
}

func TestNewEmbeddingService_PinnedGeminiRequiresKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{Provider: ProviderGemini})
	require.Error(t, err)
}

func TestNewEmbeddingService_PinnedOllama(t *testing.T) {
	svc, err := NewEmbeddingService(Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.Equal(t, "ollama", svc.ProviderName())
}

func TestNewEmbeddingService_UnknownProvider(t *testing.T) {
	_, err := NewEmbeddingService(Config{Provider: "watson"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNewLLMService_AutoWithoutKey(t *testing.T) {
	svc, err := NewLLMService(Config{Provider: ProviderAuto})
	require.NoError(t, err)
	assert.Equal(t, "ollama,degraded", svc.ProviderName())
}

func TestNewLLMService_AutoWithKey(t *testing.T) {
	svc, err := NewLLMService(Config{Provider: ProviderAuto, GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini,ollama,degraded", svc.ProviderName())
}

func TestNewLLMService_PinnedChainsEndDegraded(t *testing.T) {
	gemini, err := NewLLMService(Config{Provider: ProviderGemini, GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini,degraded", gemini.ProviderName())

	ollama, err := NewLLMService(Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.Equal(t, "ollama,degraded", ollama.ProviderName())
}

func TestNewLLMService_UnknownProvider(t *testing.T) {
	_, err := NewLLMService(Config{Provider: "watson"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
