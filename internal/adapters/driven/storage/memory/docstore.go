// Package memory provides in-memory implementations of driven ports,
// used for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk
	images    map[string][]domain.Image
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
		images:    make(map[string][]domain.Image),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.Status == "" {
		doc.Status = domain.StatusPending
	}
	s.documents[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents, newest first.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Document, 0, len(s.documents))
	for id := range s.documents {
		result = append(result, s.documents[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// DeleteDocument removes a document with its chunks and images.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.chunks, id)
	delete(s.images, id)
	return nil
}

// SetIngestStatus updates a document's ingestion state.
func (s *DocumentStore) SetIngestStatus(_ context.Context, id string, status domain.IngestStatus, statusErr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	doc.StatusError = statusErr
	s.documents[id] = doc
	return nil
}

// SaveChunks stores chunks for a document.
func (s *DocumentStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docID := chunks[0].DocumentID
	stored := make([]domain.Chunk, len(chunks))
	copy(stored, chunks)
	sort.Slice(stored, func(i, j int) bool { return stored[i].Index < stored[j].Index })
	s.chunks[docID] = stored
	return nil
}

// GetChunks retrieves all chunks for a document ordered by index.
func (s *DocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks, ok := s.chunks[documentID]
	if !ok {
		return nil, nil
	}
	result := make([]domain.Chunk, len(chunks))
	copy(result, chunks)
	return result, nil
}

// ListEmbeddedChunks returns every chunk with an embedding joined with
// its document name.
func (s *DocumentStore) ListEmbeddedChunks(_ context.Context) ([]domain.EmbeddedChunk, error) {
	return s.listChunks(true), nil
}

// ListChunks returns every chunk joined with its document name.
func (s *DocumentStore) ListChunks(_ context.Context) ([]domain.EmbeddedChunk, error) {
	return s.listChunks(false), nil
}

func (s *DocumentStore) listChunks(embeddedOnly bool) []domain.EmbeddedChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docIDs := make([]string, 0, len(s.chunks))
	for id := range s.chunks {
		docIDs = append(docIDs, id)
	}
	sort.Strings(docIDs)

	var result []domain.EmbeddedChunk
	for _, docID := range docIDs {
		name := s.documents[docID].OriginalName
		for _, chunk := range s.chunks[docID] {
			if embeddedOnly && chunk.Embedding == nil {
				continue
			}
			result = append(result, domain.EmbeddedChunk{Chunk: chunk, DocumentName: name})
		}
	}
	return result
}

// SaveImages stores image records for a document.
func (s *DocumentStore) SaveImages(_ context.Context, images []domain.Image) error {
	if len(images) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docID := images[0].DocumentID
	s.images[docID] = append(s.images[docID], images...)
	return nil
}

// GetImages retrieves image records for a document.
func (s *DocumentStore) GetImages(_ context.Context, documentID string) ([]domain.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	images := make([]domain.Image, len(s.images[documentID]))
	copy(images, s.images[documentID])
	return images, nil
}
