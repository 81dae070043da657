package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/panuwat-dev/docchat/internal/chunker"
	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
	"github.com/panuwat-dev/docchat/internal/logger"
)

// queueCapacity bounds pending ingest jobs. Uploads beyond it block the
// caller instead of growing unbounded.
const queueCapacity = 64

// ingestJob is one document queued for background ingestion.
type ingestJob struct {
	documentID string
	fileType   string
	data       []byte
}

// Ingestor turns uploaded files into embedded chunks in the background.
// A single worker goroutine consumes the queue, so at most one document
// ingests at a time and chunk batches never interleave.
type Ingestor struct {
	docStore  driven.DocumentStore
	parsers   driven.ParserRegistry
	embedder  driven.EmbeddingService
	extractor driven.ImageExtractor
	splitter  *chunker.Splitter

	queue chan ingestJob

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewIngestor creates the background ingestion pipeline. extractor is
// optional; nil disables image extraction.
func NewIngestor(
	docStore driven.DocumentStore,
	parsers driven.ParserRegistry,
	embedder driven.EmbeddingService,
	extractor driven.ImageExtractor,
) *Ingestor {
	return &Ingestor{
		docStore:  docStore,
		parsers:   parsers,
		embedder:  embedder,
		extractor: extractor,
		splitter:  chunker.New(),
		queue:     make(chan ingestJob, queueCapacity),
	}
}

// Start launches the worker goroutine. Safe to call once.
func (s *Ingestor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop shuts the worker down after the in-flight document finishes.
// Queued jobs that have not started are dropped; their documents stay
// pending and re-ingest on the next start.
func (s *Ingestor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

// Enqueue schedules a stored document for ingestion. Blocks when the
// queue is full.
func (s *Ingestor) Enqueue(ctx context.Context, documentID, fileType string, data []byte) error {
	select {
	case s.queue <- ingestJob{documentID: documentID, fileType: fileType, data: data}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the worker loop.
func (s *Ingestor) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case job := <-s.queue:
			s.process(ctx, job)
		}
	}
}

// process ingests one document: parse, chunk, embed, store. Any failure
// marks the document failed with the reason; the row stays listed.
func (s *Ingestor) process(ctx context.Context, job ingestJob) {
	start := time.Now()
	logger.Info("ingesting document %s", job.documentID)

	if err := s.docStore.SetIngestStatus(ctx, job.documentID, domain.StatusProcessing, ""); err != nil {
		logger.Error("marking document %s processing: %v", job.documentID, err)
		return
	}

	if err := s.ingest(ctx, job); err != nil {
		logger.Error("ingesting document %s: %v", job.documentID, err)
		if statusErr := s.docStore.SetIngestStatus(ctx, job.documentID, domain.StatusFailed, err.Error()); statusErr != nil {
			logger.Error("marking document %s failed: %v", job.documentID, statusErr)
		}
		return
	}

	if err := s.docStore.SetIngestStatus(ctx, job.documentID, domain.StatusReady, ""); err != nil {
		logger.Error("marking document %s ready: %v", job.documentID, err)
		return
	}
	logger.Info("document %s ingested in %s", job.documentID, time.Since(start).Round(time.Millisecond))
}

// ingest runs the pipeline for one document.
func (s *Ingestor) ingest(ctx context.Context, job ingestJob) error {
	text, err := s.parsers.Parse(ctx, job.data, job.fileType)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	pieces := s.splitter.Split(text)
	logger.Debug("document %s split into %d chunks", job.documentID, len(pieces))

	embeddings, err := s.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		// Chunks are still stored without vectors so keyword search
		// keeps working over this document.
		logger.Warn("embedding document %s failed, storing chunks without vectors: %v", job.documentID, err)
		embeddings = make([][]float32, len(pieces))
	}

	now := time.Now().UTC()
	chunks := make([]domain.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: job.documentID,
			Content:    piece,
			Index:      i,
			Embedding:  embeddings[i],
			CreatedAt:  now,
		}
	}

	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		return fmt.Errorf("saving chunks: %w", err)
	}

	s.extractImages(ctx, job)

	return nil
}

// extractImages pulls embedded images out of the file. Best-effort: any
// failure is logged and ingestion continues. Only word documents carry
// extractable media archives.
func (s *Ingestor) extractImages(ctx context.Context, job ingestJob) {
	if s.extractor == nil {
		return
	}
	if job.fileType != "docx" && job.fileType != "doc" {
		return
	}

	images, err := s.extractor.ExtractImages(ctx, job.data, job.documentID)
	if err != nil {
		logger.Warn("extracting images from document %s: %v", job.documentID, err)
		return
	}
	if len(images) == 0 {
		return
	}

	if err := s.docStore.SaveImages(ctx, images); err != nil {
		logger.Warn("saving images for document %s: %v", job.documentID, err)
	}
}
