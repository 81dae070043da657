package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panuwat-dev/docchat/internal/core/domain"
)

type stubEmbedder struct {
	name   string
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (s *stubEmbedder) ProviderName() string { return s.name }

type stubLLM struct {
	name   string
	answer string
	err    error
	calls  int
}

func (s *stubLLM) Generate(_ context.Context, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubLLM) ProviderName() string { return s.name }

func TestEmbeddingChain_FirstSuccess(t *testing.T) {
	primary := &stubEmbedder{name: "primary", vector: []float32{1, 2}}
	secondary := &stubEmbedder{name: "secondary", vector: []float32{9}}
	chain := NewEmbeddingChain(primary, secondary)

	vec, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestEmbeddingChain_Fallback(t *testing.T) {
	primary := &stubEmbedder{name: "primary", err: errors.New("quota")}
	secondary := &stubEmbedder{name: "secondary", vector: []float32{3}}
	chain := NewEmbeddingChain(primary, secondary)

	vec, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{3}, vec)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestEmbeddingChain_AllFail(t *testing.T) {
	primary := &stubEmbedder{name: "primary", err: errors.New("quota")}
	secondary := &stubEmbedder{name: "secondary", err: errors.New("connection refused")}
	chain := NewEmbeddingChain(primary, secondary)

	_, err := chain.Embed(context.Background(), "hello")
	require.Error(t, err)

	// Callers key keyword fallback off this sentinel.
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, err.Error(), "primary")
	assert.Contains(t, err.Error(), "secondary")
}

func TestEmbeddingChain_EmbedBatch(t *testing.T) {
	provider := &stubEmbedder{name: "p", vector: []float32{1}}
	chain := NewEmbeddingChain(provider)

	vecs, err := chain.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, vecs, 3)
	assert.Equal(t, 3, provider.calls)
}

func TestEmbeddingChain_EmbedBatchAbortsOnFailure(t *testing.T) {
	provider := &stubEmbedder{name: "p", err: errors.New("down")}
	chain := NewEmbeddingChain(provider)

	_, err := chain.EmbedBatch(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed text 0")
	assert.Equal(t, 1, provider.calls)
}

func TestEmbeddingChain_EmbedBatchRespectsContext(t *testing.T) {
	provider := &stubEmbedder{name: "p", vector: []float32{1}}
	chain := NewEmbeddingChain(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain.EmbedBatch(ctx, []string{"a", "b", "c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbeddingChain_ProviderName(t *testing.T) {
	chain := NewEmbeddingChain(
		&stubEmbedder{name: "gemini"},
		&stubEmbedder{name: "ollama"},
	)
	assert.Equal(t, "gemini,ollama", chain.ProviderName())
}

func TestGenerationChain_FirstSuccess(t *testing.T) {
	primary := &stubLLM{name: "primary", answer: "hi"}
	secondary := &stubLLM{name: "secondary", answer: "nope"}
	chain := NewGenerationChain(primary, secondary)

	answer, err := chain.Generate(context.Background(), "q", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "hi", answer)
	assert.Equal(t, 0, secondary.calls)
}

func TestGenerationChain_Fallback(t *testing.T) {
	primary := &stubLLM{name: "primary", err: errors.New("quota")}
	secondary := &stubLLM{name: "secondary", answer: "from backup"}
	chain := NewGenerationChain(primary, secondary)

	answer, err := chain.Generate(context.Background(), "q", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "from backup", answer)
}

func TestGenerationChain_AllFail(t *testing.T) {
	chain := NewGenerationChain(
		&stubLLM{name: "a", err: errors.New("down")},
		&stubLLM{name: "b", err: errors.New("also down")},
	)

	_, err := chain.Generate(context.Background(), "q", "ctx")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestGenerationChain_DegradedTerminalNeverFails(t *testing.T) {
	chain := NewGenerationChain(
		&stubLLM{name: "a", err: errors.New("down")},
		NewDegradedLLM(),
	)

	answer, err := chain.Generate(context.Background(), "q", "the retrieved context")
	require.NoError(t, err)
	assert.Contains(t, answer, "temporarily unavailable")
	assert.Contains(t, answer, "the retrieved context")
}

func TestGenerationChain_ProviderName(t *testing.T) {
	chain := NewGenerationChain(&stubLLM{name: "ollama"}, NewDegradedLLM())
	assert.Equal(t, "ollama,degraded", chain.ProviderName())
}
