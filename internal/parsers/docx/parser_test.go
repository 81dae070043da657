package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panuwat-dev/docchat/internal/core/domain"
)

// buildDocx assembles a minimal DOCX archive in memory.
func buildDocx(t *testing.T, documentXML string, media map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	if documentXML != "" {
		f, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = f.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	for name, content := range media {
		f, err := w.Create("word/media/" + name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestParse(t *testing.T) {
	p := New()
	data := buildDocx(t, sampleDocumentXML, nil)

	text, err := p.Parse(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestParse_NotAZip(t *testing.T) {
	p := New()

	_, err := p.Parse(context.Background(), []byte("plain text, not a zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_MissingDocumentXML(t *testing.T) {
	p := New()
	data := buildDocx(t, "", map[string][]byte{"image1.png": {0x89, 0x50}})

	text, err := p.Parse(context.Background(), data)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSupportedTypes(t *testing.T) {
	assert.ElementsMatch(t, []string{"docx", "doc"}, New().SupportedTypes())
}

func TestExtractImages(t *testing.T) {
	p := New()
	dir := t.TempDir()
	p.SetImagesDir(dir)

	data := buildDocx(t, sampleDocumentXML, map[string][]byte{
		"image1.png": {0x89, 0x50, 0x4e, 0x47},
		"image2.jpeg": {0xff, 0xd8, 0xff},
		"notes.txt":  []byte("not an image"),
	})

	images, err := p.ExtractImages(context.Background(), data, "doc-1")
	require.NoError(t, err)
	require.Len(t, images, 2)

	for _, img := range images {
		assert.Equal(t, "doc-1", img.DocumentID)
		assert.NotEmpty(t, img.ID)
		assert.Equal(t, filepath.Join(dir, img.Filename), img.StoredPath)

		content, err := os.ReadFile(img.StoredPath)
		require.NoError(t, err)
		assert.NotEmpty(t, content)
	}
}

func TestExtractImages_NoDirConfigured(t *testing.T) {
	p := New()
	data := buildDocx(t, sampleDocumentXML, map[string][]byte{"image1.png": {0x89}})

	images, err := p.ExtractImages(context.Background(), data, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, images)
}
