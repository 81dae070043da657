package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
	"github.com/panuwat-dev/docchat/internal/logger"
)

// similarityThreshold is the minimum cosine score a chunk must reach to
// count as relevant. Applied after the topK cut.
const similarityThreshold = 0.3

// minTokenLen drops short keyword tokens (articles, particles).
const minTokenLen = 2

// SimilarityRetriever ranks stored chunks against a query embedding by
// cosine similarity. Retrieval is a full scan over every embedded chunk.
type SimilarityRetriever struct {
	docStore driven.DocumentStore
}

// NewSimilarityRetriever creates a vector retriever over the store.
func NewSimilarityRetriever(docStore driven.DocumentStore) *SimilarityRetriever {
	return &SimilarityRetriever{docStore: docStore}
}

// Retrieve returns up to topK chunks scoring above the similarity
// threshold, best first. The threshold cut happens after the topK
// truncation, so a full topK of weak matches can thin out to nothing.
func (r *SimilarityRetriever) Retrieve(ctx context.Context, queryEmbedding []float32, topK int) ([]domain.RetrievedChunk, error) {
	chunks, err := r.docStore.ListEmbeddedChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing embedded chunks: %w", err)
	}

	scored := make([]domain.RetrievedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) > 0 && len(queryEmbedding) > 0 && len(chunk.Embedding) != len(queryEmbedding) {
			logger.Warn("embedding dimension mismatch: chunk %s has %d, query has %d",
				chunk.ID, len(chunk.Embedding), len(queryEmbedding))
		}
		scored = append(scored, domain.RetrievedChunk{
			EmbeddedChunk: chunk,
			Similarity:    cosineSimilarity(queryEmbedding, chunk.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	result := scored[:0]
	for _, rc := range scored {
		if rc.Similarity > similarityThreshold {
			result = append(result, rc)
		}
	}

	return result, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Nil, zero-magnitude or mismatched-length inputs score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// KeywordRetriever ranks chunks by token overlap with the question.
// It needs no embeddings, so search keeps working when every embedding
// provider is down or the corpus was ingested without vectors.
type KeywordRetriever struct {
	docStore driven.DocumentStore
}

// NewKeywordRetriever creates a keyword retriever over the store.
func NewKeywordRetriever(docStore driven.DocumentStore) *KeywordRetriever {
	return &KeywordRetriever{docStore: docStore}
}

// Retrieve scores every stored chunk by the fraction of distinct question
// tokens appearing in its content, drops zero scores and returns the top
// matches, best first.
func (r *KeywordRetriever) Retrieve(ctx context.Context, question string, limit int) ([]domain.RetrievedChunk, error) {
	tokens := keywordTokens(question)
	if len(tokens) == 0 {
		return nil, nil
	}

	chunks, err := r.docStore.ListChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}

	var scored []domain.RetrievedChunk
	for _, chunk := range chunks {
		content := strings.ToLower(chunk.Content)
		matched := 0
		for _, token := range tokens {
			if strings.Contains(content, token) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		scored = append(scored, domain.RetrievedChunk{
			EmbeddedChunk: chunk,
			Similarity:    float64(matched) / float64(len(tokens)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

// keywordTokens lower-cases the question, splits on whitespace, drops
// short tokens and de-duplicates while preserving order.
func keywordTokens(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	seen := make(map[string]bool, len(fields))
	var tokens []string
	for _, f := range fields {
		if len(f) <= minTokenLen || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}
