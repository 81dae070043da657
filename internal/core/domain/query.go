package domain

// RetrievedChunk is a chunk paired with its relevance score, produced by a
// retriever and consumed by the query pipeline. Never persisted.
type RetrievedChunk struct {
	// Chunk is the matched chunk joined with its document name.
	EmbeddedChunk

	// Similarity is the retrieval score. Cosine similarity for the vector
	// path, token-overlap ratio in [0, 1] for the keyword path.
	Similarity float64
}

// SourceImage is an image reference rendered alongside a source.
type SourceImage struct {
	// ID is the image identifier.
	ID string `json:"id"`

	// URL is the public path of the stored image file.
	URL string `json:"url"`

	// Alt is the alternative text.
	Alt string `json:"alt"`
}

// Source describes one document that contributed to an answer.
// Recomputed per query, never persisted.
type Source struct {
	// DocumentID identifies the contributing document.
	DocumentID string `json:"documentId"`

	// DocumentName is the document's display name.
	DocumentName string `json:"documentName"`

	// Relevance is a score in [0, 100], derived from the best-matching chunk.
	Relevance int `json:"relevance"`

	// Preview is the first 150 characters of the top-ranked chunk.
	Preview string `json:"preview"`

	// Images are pictures extracted from this document.
	Images []SourceImage `json:"images"`
}

// QueryResult is the final shape of one answered question.
type QueryResult struct {
	// Answer is the generated (or degraded) answer text.
	Answer string `json:"answer"`

	// Sources lists contributing documents in retrieval rank order.
	Sources []Source `json:"sources"`

	// Images aggregates source images, capped at five.
	Images []SourceImage `json:"images"`
}
