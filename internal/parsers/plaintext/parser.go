// Package plaintext handles plain text and Markdown files.
// Markdown is treated as plain text; no markup stripping is attempted.
package plaintext

import (
	"context"

	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser handles plain text documents.
type Parser struct{}

// New creates a new plain text parser.
func New() *Parser {
	return &Parser{}
}

// SupportedTypes returns the extensions this parser handles.
func (p *Parser) SupportedTypes() []string {
	return []string{"txt", "md"}
}

// Parse returns the file content as-is.
func (p *Parser) Parse(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}
