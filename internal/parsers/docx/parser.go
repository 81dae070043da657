// Package docx handles DOCX documents. Text is extracted from
// word/document.xml; embedded pictures under word/media are extracted
// best-effort.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
	"github.com/panuwat-dev/docchat/internal/logger"
)

// Ensure Parser implements the interfaces.
var (
	_ driven.Parser         = (*Parser)(nil)
	_ driven.ImageExtractor = (*Parser)(nil)
)

// Parser handles DOCX (and legacy DOC declared type) documents.
type Parser struct {
	imagesDir string
}

// New creates a new DOCX parser. Image extraction is disabled until
// SetImagesDir is called with a writable directory.
func New() *Parser {
	return &Parser{}
}

// SetImagesDir sets the directory extracted images are written to.
func (p *Parser) SetImagesDir(dir string) {
	p.imagesDir = dir
}

// SupportedTypes returns the extensions this parser handles.
func (p *Parser) SupportedTypes() []string {
	return []string{"docx", "doc"}
}

// Parse extracts plain text from the DOCX archive.
func (p *Parser) Parse(_ context.Context, data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.ErrInvalidInput
	}

	return extractDocumentText(reader)
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		return parseDocumentXML(content), nil
	}
	return "", nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, text := range r.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}

// ExtractImages copies pictures under word/media to the images directory
// and returns their records. A failure on one image skips it; the rest of
// the archive is still processed.
func (p *Parser) ExtractImages(_ context.Context, data []byte, documentID string) ([]domain.Image, error) {
	if p.imagesDir == "" {
		return nil, nil
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	if err := os.MkdirAll(p.imagesDir, 0o750); err != nil {
		return nil, err
	}

	var images []domain.Image
	for _, file := range reader.File {
		if !strings.HasPrefix(file.Name, "word/media/") || file.FileInfo().IsDir() {
			continue
		}
		if !isImageFile(file.Name) {
			continue
		}

		img, err := p.extractOne(file, documentID)
		if err != nil {
			logger.Warn("docx: skipping image %s: %v", file.Name, err)
			continue
		}
		images = append(images, *img)
	}

	return images, nil
}

// extractOne writes a single archive entry to the images directory.
func (p *Parser) extractOne(file *zip.File, documentID string) (*domain.Image, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	id := uuid.New().String()
	filename := id + filepath.Ext(file.Name)
	storedPath := filepath.Join(p.imagesDir, filename)

	out, err := os.Create(storedPath)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		os.Remove(storedPath)
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, err
	}

	return &domain.Image{
		ID:         id,
		DocumentID: documentID,
		Filename:   filename,
		StoredPath: storedPath,
		AltText:    "Image from document",
	}, nil
}

// isImageFile reports whether the archive entry looks like a picture.
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".emf", ".wmf":
		return true
	}
	return false
}
