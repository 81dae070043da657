package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
	"github.com/panuwat-dev/docchat/internal/core/ports/driving"
	"github.com/panuwat-dev/docchat/internal/logger"
)

// Retrieval and presentation bounds.
const (
	// retrieveTopK is how many chunks each retrieval strategy may return.
	retrieveTopK = 5

	// previewLen is the length of a source's chunk preview, in runes.
	previewLen = 150

	// maxResultImages caps the images attached to one answer.
	maxResultImages = 5
)

// noResultsAnswer is returned when neither retrieval strategy finds
// anything. Generation is never invoked in that case.
const noResultsAnswer = "No relevant information was found in the uploaded documents. " +
	"Please try rephrasing your question, or upload documents that cover this topic."

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService runs the retrieval-augmented answer pipeline: embed the
// question, retrieve relevant chunks, generate a grounded answer, and
// assemble per-document sources. Provider failures degrade the pipeline
// step by step; they never surface to the caller.
type ChatService struct {
	docStore   driven.DocumentStore
	embedder   driven.EmbeddingService
	llm        driven.LLMService
	similarity *SimilarityRetriever
	keyword    *KeywordRetriever
	// imageURL renders a stored image filename into a public URL.
	imageURL func(filename string) string
}

// NewChatService creates the query pipeline. imageURL maps a stored image
// filename to the URL clients fetch it from; nil disables image links.
func NewChatService(
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	imageURL func(filename string) string,
) *ChatService {
	if imageURL == nil {
		imageURL = func(filename string) string { return "/uploads/images/" + filename }
	}
	return &ChatService{
		docStore:   docStore,
		embedder:   embedder,
		llm:        llm,
		similarity: NewSimilarityRetriever(docStore),
		keyword:    NewKeywordRetriever(docStore),
		imageURL:   imageURL,
	}
}

// Query answers one question over the corpus.
func (s *ChatService) Query(ctx context.Context, question string) (*domain.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	retrieved, err := s.retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	if len(retrieved) == 0 {
		logger.Info("no relevant chunks for question, skipping generation")
		return &domain.QueryResult{
			Answer:  noResultsAnswer,
			Sources: []domain.Source{},
			Images:  []domain.SourceImage{},
		}, nil
	}

	contextText := buildContext(retrieved)

	answer, err := s.llm.Generate(ctx, question, contextText)
	if err != nil {
		// A fully constructed chain ends in the degraded provider and
		// cannot fail; a bare provider still can. Absorb it.
		logger.Error("generation failed: %v", err)
		answer = noResultsAnswer
	}

	sources, images := s.assembleSources(ctx, retrieved)

	return &domain.QueryResult{
		Answer:  answer,
		Sources: sources,
		Images:  images,
	}, nil
}

// retrieve picks chunks for the question: vector search when the question
// embeds, keyword search when it cannot or when vector search comes back
// empty.
func (s *ChatService) retrieve(ctx context.Context, question string) ([]domain.RetrievedChunk, error) {
	queryEmbedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("question embedding failed, falling back to keyword search: %v", err)
		return s.keyword.Retrieve(ctx, question, retrieveTopK)
	}

	retrieved, err := s.similarity.Retrieve(ctx, queryEmbedding, retrieveTopK)
	if err != nil {
		return nil, err
	}

	if len(retrieved) == 0 {
		logger.Debug("vector search found nothing, trying keyword search")
		return s.keyword.Retrieve(ctx, question, retrieveTopK)
	}

	return retrieved, nil
}

// buildContext renders retrieved chunks into the grounding text handed to
// the generation provider.
func buildContext(retrieved []domain.RetrievedChunk) string {
	blocks := make([]string, len(retrieved))
	for i, rc := range retrieved {
		blocks[i] = fmt.Sprintf("[Document %d: %s]\n%s", i+1, rc.DocumentName, rc.Content)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// assembleSources groups retrieved chunks by document in first-appearance
// order. Each document's relevance comes from its best chunk; the preview
// from its top-ranked chunk. Image lookups are best-effort.
func (s *ChatService) assembleSources(ctx context.Context, retrieved []domain.RetrievedChunk) ([]domain.Source, []domain.SourceImage) {
	var order []string
	best := make(map[string]domain.RetrievedChunk)
	maxSim := make(map[string]float64)

	for _, rc := range retrieved {
		if _, seen := best[rc.DocumentID]; !seen {
			order = append(order, rc.DocumentID)
			best[rc.DocumentID] = rc
		}
		if rc.Similarity > maxSim[rc.DocumentID] {
			maxSim[rc.DocumentID] = rc.Similarity
		}
	}

	sources := make([]domain.Source, 0, len(order))
	allImages := make([]domain.SourceImage, 0)

	for _, docID := range order {
		top := best[docID]

		preview := top.Content
		// Truncate on a rune boundary so multibyte text stays valid UTF-8.
		if runes := []rune(preview); len(runes) > previewLen {
			preview = string(runes[:previewLen]) + "..."
		}

		var srcImages []domain.SourceImage
		images, err := s.docStore.GetImages(ctx, docID)
		if err != nil {
			logger.Warn("loading images for document %s: %v", docID, err)
		}
		for _, img := range images {
			srcImages = append(srcImages, domain.SourceImage{
				ID:  img.ID,
				URL: s.imageURL(img.Filename),
				Alt: img.AltText,
			})
		}

		sources = append(sources, domain.Source{
			DocumentID:   docID,
			DocumentName: top.DocumentName,
			Relevance:    int(math.Round(maxSim[docID] * 100)),
			Preview:      preview,
			Images:       srcImages,
		})

		for _, img := range srcImages {
			if len(allImages) < maxResultImages {
				allImages = append(allImages, img)
			}
		}
	}

	return sources, allImages
}
