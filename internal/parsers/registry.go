// Package parsers dispatches uploaded files to type-specific text parsers.
package parsers

import (
	"context"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
	"github.com/panuwat-dev/docchat/internal/parsers/docx"
	"github.com/panuwat-dev/docchat/internal/parsers/pdf"
	"github.com/panuwat-dev/docchat/internal/parsers/plaintext"
)

// Registry resolves a declared file type to its parser.
type Registry struct {
	byType map[string]driven.Parser
}

// NewRegistry creates a registry with the given parsers.
func NewRegistry(parsers ...driven.Parser) *Registry {
	r := &Registry{byType: make(map[string]driven.Parser)}
	for _, p := range parsers {
		for _, ext := range p.SupportedTypes() {
			r.byType[ext] = p
		}
	}
	return r
}

// Defaults returns a registry covering pdf, docx/doc, txt and md.
func Defaults() *Registry {
	return NewRegistry(pdf.New(), docx.New(), plaintext.New())
}

// Parse extracts plain text from the file bytes using the parser
// registered for the declared type. Unknown types return
// domain.ErrUnsupportedFileType.
func (r *Registry) Parse(ctx context.Context, data []byte, fileType string) (string, error) {
	p, ok := r.byType[fileType]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	return p.Parse(ctx, data)
}

// Supported reports whether the declared type has a registered parser.
func (r *Registry) Supported(fileType string) bool {
	_, ok := r.byType[fileType]
	return ok
}
