package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panuwat-dev/docchat/internal/adapters/driven/storage/memory"
	"github.com/panuwat-dev/docchat/internal/core/domain"
)

func seedChunks(t *testing.T, store *memory.DocumentStore, docID, docName string, chunks []domain.Chunk) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: docID, OriginalName: docName}))
	for i := range chunks {
		chunks[i].DocumentID = docID
	}
	require.NoError(t, store.SaveChunks(ctx, chunks))
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"nil left", nil, []float32{1}, 0},
		{"nil right", []float32{1}, nil, 0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"zero magnitude", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarityRetriever_RanksAndFilters(t *testing.T) {
	store := memory.NewDocumentStore()
	seedChunks(t, store, "doc-1", "guide.pdf", []domain.Chunk{
		{ID: "strong", Index: 0, Content: "strong", Embedding: []float32{1, 0}},
		{ID: "medium", Index: 1, Content: "medium", Embedding: []float32{1, 1}},
		{ID: "weak", Index: 2, Content: "weak", Embedding: []float32{0.1, 1}},
		{ID: "orthogonal", Index: 3, Content: "none", Embedding: []float32{0, 1}},
	})

	r := NewSimilarityRetriever(store)
	got, err := r.Retrieve(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)

	// Orthogonal chunk scores 0 and falls below the threshold.
	require.Len(t, got, 2)
	assert.Equal(t, "strong", got[0].ID)
	assert.Equal(t, "medium", got[1].ID)
	assert.Greater(t, got[0].Similarity, got[1].Similarity)
	assert.Equal(t, "guide.pdf", got[0].DocumentName)
}

func TestSimilarityRetriever_FilterAfterTruncation(t *testing.T) {
	store := memory.NewDocumentStore()
	// Six orthogonal-ish chunks: only one scores above the threshold, but
	// five weak ones fill topK first. The strong chunk must still survive
	// because sorting happens before truncation.
	chunks := []domain.Chunk{
		{ID: "hit", Index: 0, Content: "hit", Embedding: []float32{1, 0}},
	}
	for i := 1; i <= 5; i++ {
		chunks = append(chunks, domain.Chunk{
			ID: string(rune('a' + i)), Index: i, Content: "miss", Embedding: []float32{0, 1},
		})
	}
	seedChunks(t, store, "doc-1", "guide.pdf", chunks)

	r := NewSimilarityRetriever(store)
	got, err := r.Retrieve(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hit", got[0].ID)
}

func TestSimilarityRetriever_EmptyCorpus(t *testing.T) {
	r := NewSimilarityRetriever(memory.NewDocumentStore())
	got, err := r.Retrieve(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKeywordTokens(t *testing.T) {
	// Short tokens drop, duplicates collapse, order holds.
	tokens := keywordTokens("The THE cat cat sat on warm warm windowsill")
	assert.Equal(t, []string{"the", "cat", "sat", "warm", "windowsill"}, tokens)

	assert.Nil(t, keywordTokens(""))
	assert.Nil(t, keywordTokens("a an of"))
}

func TestKeywordRetriever_ScoresByDistinctTokenOverlap(t *testing.T) {
	store := memory.NewDocumentStore()
	seedChunks(t, store, "doc-1", "notes.txt", []domain.Chunk{
		{ID: "both", Index: 0, Content: "The warranty covers repairs and replacement parts."},
		{ID: "one", Index: 1, Content: "Repairs are scheduled on weekdays."},
		{ID: "none", Index: 2, Content: "Unrelated text about gardening."},
	})

	r := NewKeywordRetriever(store)
	got, err := r.Retrieve(context.Background(), "warranty repairs", 5)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "both", got[0].ID)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-9)
	assert.Equal(t, "one", got[1].ID)
	assert.InDelta(t, 0.5, got[1].Similarity, 1e-9)
}

func TestKeywordRetriever_WorksWithoutEmbeddings(t *testing.T) {
	store := memory.NewDocumentStore()
	seedChunks(t, store, "doc-1", "notes.txt", []domain.Chunk{
		{ID: "c-1", Index: 0, Content: "invoice totals are due monthly"},
	})

	r := NewKeywordRetriever(store)
	got, err := r.Retrieve(context.Background(), "monthly invoice", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c-1", got[0].ID)
}

func TestKeywordRetriever_Limit(t *testing.T) {
	store := memory.NewDocumentStore()
	var chunks []domain.Chunk
	for i := 0; i < 8; i++ {
		chunks = append(chunks, domain.Chunk{
			ID: string(rune('a' + i)), Index: i, Content: "shipping policy details",
		})
	}
	seedChunks(t, store, "doc-1", "policy.md", chunks)

	r := NewKeywordRetriever(store)
	got, err := r.Retrieve(context.Background(), "shipping policy", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestKeywordRetriever_NoUsableTokens(t *testing.T) {
	store := memory.NewDocumentStore()
	seedChunks(t, store, "doc-1", "notes.txt", []domain.Chunk{
		{ID: "c-1", Index: 0, Content: "anything"},
	})

	r := NewKeywordRetriever(store)
	got, err := r.Retrieve(context.Background(), "is it a", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
