package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewLLMService(Config{BaseURL: server.URL})
}

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(generateResponse{Response: "the answer", Done: true})
	})

	answer, err := svc.Generate(context.Background(), "what is it?", "[Document 1: a.txt]\nthe context")
	require.NoError(t, err)

	assert.Equal(t, "/api/generate", gotPath)
	assert.Equal(t, "the answer", answer)
	assert.Equal(t, DefaultModel, gotBody.Model)
	assert.False(t, gotBody.Stream)
	require.NotNil(t, gotBody.Options)
	assert.InDelta(t, 0.3, gotBody.Options.Temperature, 1e-9)
	assert.Equal(t, 4096, gotBody.Options.NumCtx)

	// The prompt embeds both the question and the grounding context.
	assert.Contains(t, gotBody.Prompt, "what is it?")
	assert.Contains(t, gotBody.Prompt, "the context")
}

func TestGenerate_ServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	_, err := svc.Generate(context.Background(), "q", "ctx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestProviderName(t *testing.T) {
	assert.Equal(t, "ollama", NewLLMService(Config{}).ProviderName())
}
