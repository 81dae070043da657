package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
	"github.com/panuwat-dev/docchat/internal/logger"
)

// embedInterval paces sequential batch embedding so external providers
// are not hammered during ingestion.
const embedInterval = 100 * time.Millisecond

// Ensure the chains implement the ports.
var (
	_ driven.EmbeddingService = (*EmbeddingChain)(nil)
	_ driven.LLMService       = (*GenerationChain)(nil)
)

// EmbeddingChain tries embedding providers in order and returns the
// first success. When every provider fails the error wraps
// domain.ErrEmbeddingUnavailable so callers can trigger keyword
// fallback retrieval.
type EmbeddingChain struct {
	providers []driven.EmbeddingService
	limiter   *rate.Limiter
}

// NewEmbeddingChain creates a chain over the given providers.
// Order is significant: the first provider is primary.
func NewEmbeddingChain(providers ...driven.EmbeddingService) *EmbeddingChain {
	return &EmbeddingChain{
		providers: providers,
		limiter:   rate.NewLimiter(rate.Every(embedInterval), 1),
	}
}

// Embed generates a vector embedding via the first provider that succeeds.
func (c *EmbeddingChain) Embed(ctx context.Context, text string) ([]float32, error) {
	var errs []error
	for _, p := range c.providers {
		vec, err := p.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		logger.Warn("embedding provider %s failed: %v", p.ProviderName(), err)
		errs = append(errs, fmt.Errorf("%s: %w", p.ProviderName(), err))
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, errors.Join(errs...))
}

// EmbedBatch embeds texts one at a time, pausing between calls to
// respect provider rate limits. The first failing text aborts the batch.
func (c *EmbeddingChain) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("embed pacing: %w", err)
		}
		vec, err := c.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

// ProviderName identifies the chain for logging.
func (c *EmbeddingChain) ProviderName() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.ProviderName()
	}
	return strings.Join(names, ",")
}

// GenerationChain tries generation providers in order and returns the
// first success. The factory appends a terminal degraded provider that
// never fails, so a fully constructed chain always produces an answer.
type GenerationChain struct {
	providers []driven.LLMService
}

// NewGenerationChain creates a chain over the given providers.
func NewGenerationChain(providers ...driven.LLMService) *GenerationChain {
	return &GenerationChain{providers: providers}
}

// Generate answers the question via the first provider that succeeds.
func (c *GenerationChain) Generate(ctx context.Context, question, contextText string) (string, error) {
	var errs []error
	for _, p := range c.providers {
		answer, err := p.Generate(ctx, question, contextText)
		if err == nil {
			return answer, nil
		}
		logger.Warn("generation provider %s failed: %v", p.ProviderName(), err)
		errs = append(errs, fmt.Errorf("%s: %w", p.ProviderName(), err))
	}
	return "", fmt.Errorf("%w: %w", domain.ErrGenerationUnavailable, errors.Join(errs...))
}

// ProviderName identifies the chain for logging.
func (c *GenerationChain) ProviderName() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.ProviderName()
	}
	return strings.Join(names, ",")
}
