package driven

import (
	"context"

	"github.com/panuwat-dev/docchat/internal/core/domain"
)

// Parser extracts plain text from an uploaded file.
// Each parser handles specific declared file types (extensions).
type Parser interface {
	// SupportedTypes returns the extensions this parser handles,
	// lower-case and without the dot.
	SupportedTypes() []string

	// Parse extracts the plain text content from the file bytes.
	Parse(ctx context.Context, data []byte) (string, error)
}

// ParserRegistry resolves a declared file type to its parser.
type ParserRegistry interface {
	// Parse extracts plain text from the file bytes using the parser
	// registered for the declared type. Unknown types return
	// domain.ErrUnsupportedFileType.
	Parse(ctx context.Context, data []byte, fileType string) (string, error)

	// Supported reports whether the declared type has a registered parser.
	Supported(fileType string) bool
}

// ImageExtractor pulls embedded images out of a document file.
// Extraction is best-effort: a failed image is skipped, never fatal.
type ImageExtractor interface {
	// ExtractImages writes embedded images to the images directory and
	// returns their records. The returned slice may be empty.
	ExtractImages(ctx context.Context, data []byte, documentID string) ([]domain.Image, error)
}
