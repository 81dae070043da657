package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates the parser cannot handle the
	// declared file extension. Ingestion aborts for that document.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmbeddingUnavailable indicates every configured embedding provider
	// failed. The query pipeline falls back to keyword retrieval.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrGenerationUnavailable indicates every configured generation
	// provider failed. The pipeline substitutes a degraded static answer;
	// this error never reaches the caller of a query.
	ErrGenerationUnavailable = errors.New("generation unavailable")
)
