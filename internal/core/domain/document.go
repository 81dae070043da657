package domain

import "time"

// IngestStatus tracks the lifecycle of a document's background ingestion.
type IngestStatus string

// Ingestion states. A document is created as StatusPending when the upload
// is accepted, moves to StatusProcessing when the worker picks it up, and
// ends in StatusReady or StatusFailed.
const (
	StatusPending    IngestStatus = "pending"
	StatusProcessing IngestStatus = "processing"
	StatusReady      IngestStatus = "ready"
	StatusFailed     IngestStatus = "failed"
)

// Document represents an uploaded file in the corpus.
// It is immutable once stored, except for ingest status and deletion.
// Deleting a document cascades to all of its chunks and images.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the stored (disk) file name.
	Filename string

	// OriginalName is the display name as uploaded.
	OriginalName string

	// Filepath is the absolute path of the stored file.
	Filepath string

	// FileType is the declared extension without the dot (pdf, docx, txt, md).
	FileType string

	// FileSize is the size in bytes.
	FileSize int64

	// Status is the current ingestion state.
	Status IngestStatus

	// StatusError holds the failure reason when Status is StatusFailed.
	StatusError string

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time
}

// Chunk is a bounded, possibly overlapping fragment of a document's text.
// It is the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the chunk text.
	Content string

	// Index is the 0-based ordinal within the document. Indices are unique
	// per document and reflect original left-to-right order. Adjacent chunks
	// are expected to share overlapping text.
	Index int

	// Embedding is the vector representation. Nil when embedding generation
	// failed or has not yet run.
	Embedding []float32

	// CreatedAt is when the chunk was stored.
	CreatedAt time.Time
}

// EmbeddedChunk is a chunk joined with its document's display name,
// as returned by the store's scan operations for retrieval.
type EmbeddedChunk struct {
	Chunk

	// DocumentName is the owning document's display name.
	DocumentName string
}

// Image is a picture extracted from a document during ingestion.
// Extraction is best-effort; a failed image never aborts ingestion.
type Image struct {
	// ID is the unique identifier for the image.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Filename is the stored file name under the images directory.
	Filename string

	// StoredPath is the absolute path of the extracted image file.
	StoredPath string

	// PageNumber is the 1-based page the image came from, 0 if unknown.
	PageNumber int

	// AltText is a short description for rendering.
	AltText string
}
