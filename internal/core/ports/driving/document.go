package driving

import (
	"context"

	"github.com/panuwat-dev/docchat/internal/core/domain"
)

// UploadRequest describes a file accepted for ingestion.
type UploadRequest struct {
	// OriginalName is the display name as uploaded.
	OriginalName string

	// FileType is the declared extension without the dot.
	FileType string

	// Data is the raw file content.
	Data []byte
}

// DocumentService manages the corpus: accepting uploads, listing,
// deletion, and ingestion status.
type DocumentService interface {
	// Upload stores the file, registers the document as pending and
	// enqueues background ingestion. It returns before ingestion runs.
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)

	// Get returns a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document, its stored file, and all of its chunks
	// and images.
	Delete(ctx context.Context, id string) error

	// Status reports a document's ingestion state for polling.
	Status(ctx context.Context, id string) (domain.IngestStatus, string, error)
}
