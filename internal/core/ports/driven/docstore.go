package driven

import (
	"context"

	"github.com/panuwat-dev/docchat/internal/core/domain"
)

// DocumentStore persists documents, chunks and extracted images.
// Backed by SQLite.
type DocumentStore interface {
	// SaveDocument stores a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound when it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document. Its chunks and images are removed
	// in the same statement via foreign-key cascade.
	DeleteDocument(ctx context.Context, id string) error

	// SetIngestStatus updates a document's ingestion state.
	SetIngestStatus(ctx context.Context, id string, status domain.IngestStatus, statusErr string) error

	// SaveChunks stores all chunks of one document as a single atomic unit:
	// either every chunk commits or none does.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunks retrieves a document's chunks ordered by index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListEmbeddedChunks returns every chunk that has a non-null embedding,
	// joined with its document's display name. Used by the vector
	// retrieval path, which performs a full scan.
	ListEmbeddedChunks(ctx context.Context) ([]domain.EmbeddedChunk, error)

	// ListChunks returns every stored chunk joined with its document's
	// display name, regardless of embedding presence. Used by the keyword
	// retrieval path so search still works when no embeddings exist.
	ListChunks(ctx context.Context) ([]domain.EmbeddedChunk, error)

	// SaveImages stores image records extracted from a document.
	SaveImages(ctx context.Context, images []domain.Image) error

	// GetImages retrieves image records for a document.
	GetImages(ctx context.Context, documentID string) ([]domain.Image, error)
}
