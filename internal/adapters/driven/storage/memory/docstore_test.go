package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panuwat-dev/docchat/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
	assert.NotNil(t, store.chunks)
	assert.NotNil(t, store.images)
}

func TestDocumentStore_SaveDocument_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now()
	doc := &domain.Document{
		ID:           "doc-1",
		Filename:     "a1b2.txt",
		OriginalName: "notes.txt",
		Filepath:     "/tmp/uploads/a1b2.txt",
		FileType:     "txt",
		FileSize:     10,
		CreatedAt:    now,
	}

	err := store.SaveDocument(ctx, doc)
	require.NoError(t, err)

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", saved.OriginalName)
	assert.Equal(t, "txt", saved.FileType)
	// Status defaults to pending when unset.
	assert.Equal(t, domain.StatusPending, saved.Status)
}

func TestDocumentStore_SaveDocument_Invalid(t *testing.T) {
	store := NewDocumentStore()

	err := store.SaveDocument(context.Background(), &domain.Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_ListDocuments_NewestFirst(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "old", OriginalName: "old.txt", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "new", OriginalName: "new.txt", CreatedAt: now}))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)
}

func TestDocumentStore_SetIngestStatus(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1"}))

	require.NoError(t, store.SetIngestStatus(ctx, "doc-1", domain.StatusFailed, "no embeddings"))
	doc, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, doc.Status)
	assert.Equal(t, "no embeddings", doc.StatusError)

	err = store.SetIngestStatus(ctx, "missing", domain.StatusReady, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ChunksAndImages(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", OriginalName: "guide.pdf"}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-2", DocumentID: "doc-1", Content: "b", Index: 1},
		{ID: "c-1", DocumentID: "doc-1", Content: "a", Index: 0, Embedding: []float32{1, 2}},
	}))
	require.NoError(t, store.SaveImages(ctx, []domain.Image{
		{ID: "img-1", DocumentID: "doc-1", Filename: "fig.png"},
	}))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "a", chunks[0].Content)

	embedded, err := store.ListEmbeddedChunks(ctx)
	require.NoError(t, err)
	require.Len(t, embedded, 1)
	assert.Equal(t, "c-1", embedded[0].ID)
	assert.Equal(t, "guide.pdf", embedded[0].DocumentName)

	all, err := store.ListChunks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	images, err := store.GetImages(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "fig.png", images[0].Filename)
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1"}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{{ID: "c-1", DocumentID: "doc-1"}}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	err = store.DeleteDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			_ = store.SaveDocument(ctx, &domain.Document{ID: id})
			_, _ = store.ListDocuments(ctx)
			_, _ = store.GetDocument(ctx, id)
		}(i)
	}
	wg.Wait()

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 10)
}
