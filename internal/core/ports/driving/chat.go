package driving

import (
	"context"

	"github.com/panuwat-dev/docchat/internal/core/domain"
)

// ChatService answers natural-language questions over the document corpus.
type ChatService interface {
	// Query runs the retrieval-augmented pipeline for one question and
	// returns the answer with its ranked sources. Provider failures are
	// absorbed into degraded results; only invalid input is an error.
	Query(ctx context.Context, question string) (*domain.QueryResult, error)
}
