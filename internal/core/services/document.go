package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
	"github.com/panuwat-dev/docchat/internal/core/ports/driving"
	"github.com/panuwat-dev/docchat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the corpus: it stores uploaded files on disk,
// registers them, and hands them to the ingestor. Reads and deletes go
// straight to the store.
type DocumentService struct {
	docStore   driven.DocumentStore
	parsers    driven.ParserRegistry
	ingestor   *Ingestor
	uploadsDir string
}

// NewDocumentService creates the document service. Uploaded files are
// stored under uploadsDir.
func NewDocumentService(
	docStore driven.DocumentStore,
	parsers driven.ParserRegistry,
	ingestor *Ingestor,
	uploadsDir string,
) *DocumentService {
	return &DocumentService{
		docStore:   docStore,
		parsers:    parsers,
		ingestor:   ingestor,
		uploadsDir: uploadsDir,
	}
}

// Upload stores the file, registers the document as pending and enqueues
// background ingestion. It returns before ingestion runs.
func (s *DocumentService) Upload(ctx context.Context, req driving.UploadRequest) (*domain.Document, error) {
	fileType := strings.ToLower(strings.TrimPrefix(req.FileType, "."))
	if req.OriginalName == "" || len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: missing file name or content", domain.ErrInvalidInput)
	}
	if !s.parsers.Supported(fileType) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fileType)
	}

	if err := os.MkdirAll(s.uploadsDir, 0750); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}

	id := uuid.NewString()
	filename := id + "." + fileType
	storedPath, err := filepath.Abs(filepath.Join(s.uploadsDir, filename))
	if err != nil {
		return nil, fmt.Errorf("resolving upload path: %w", err)
	}

	if err := os.WriteFile(storedPath, req.Data, 0640); err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}

	doc := &domain.Document{
		ID:           id,
		Filename:     filename,
		OriginalName: req.OriginalName,
		Filepath:     storedPath,
		FileType:     fileType,
		FileSize:     int64(len(req.Data)),
		Status:       domain.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		// Roll back the stored file so disk and store stay in step.
		if rmErr := os.Remove(storedPath); rmErr != nil {
			logger.Warn("removing orphaned upload %s: %v", storedPath, rmErr)
		}
		return nil, fmt.Errorf("registering document: %w", err)
	}

	if err := s.ingestor.Enqueue(ctx, doc.ID, fileType, req.Data); err != nil {
		return nil, fmt.Errorf("enqueueing ingestion: %w", err)
	}

	logger.Info("accepted upload %s (%s, %d bytes)", doc.OriginalName, doc.ID, doc.FileSize)
	return doc, nil
}

// Get returns a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document, its stored file, its extracted image files,
// and all of its chunks and image records.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	// Remove extracted image files before the records cascade away.
	images, err := s.docStore.GetImages(ctx, id)
	if err != nil {
		logger.Warn("listing images for document %s: %v", id, err)
	}
	for _, img := range images {
		if err := os.Remove(img.StoredPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("removing image file %s: %v", img.StoredPath, err)
		}
	}

	if err := s.docStore.DeleteDocument(ctx, id); err != nil {
		return err
	}

	if err := os.Remove(doc.Filepath); err != nil && !os.IsNotExist(err) {
		logger.Warn("removing stored file %s: %v", doc.Filepath, err)
	}

	logger.Info("deleted document %s (%s)", doc.OriginalName, id)
	return nil
}

// Status reports a document's ingestion state for polling.
func (s *DocumentService) Status(ctx context.Context, id string) (domain.IngestStatus, string, error) {
	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return "", "", err
	}
	return doc.Status, doc.StatusError, nil
}
