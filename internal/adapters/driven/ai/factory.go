// Package ai assembles embedding and generation provider chains from
// configuration. Providers are constructed once at startup and injected
// into the core services.
package ai

import (
	"fmt"

	geminiembed "github.com/panuwat-dev/docchat/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/panuwat-dev/docchat/internal/adapters/driven/embedding/ollama"
	geminillm "github.com/panuwat-dev/docchat/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/panuwat-dev/docchat/internal/adapters/driven/llm/ollama"
	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
)

// Provider modes. In auto mode the primary (Gemini) is tried first and
// the local Ollama endpoint second; pinned modes use one provider only.
const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config selects and configures the providers.
type Config struct {
	// Provider is auto, gemini or ollama.
	Provider string

	// GeminiAPIKey enables the Gemini provider when set.
	GeminiAPIKey string

	// OllamaBaseURL is the local Ollama endpoint.
	OllamaBaseURL string

	// OllamaModel is the Ollama generation model.
	OllamaModel string

	// OllamaEmbedModel is the Ollama embedding model.
	OllamaEmbedModel string
}

// NewEmbeddingService builds the embedding provider chain for the
// configured mode.
func NewEmbeddingService(cfg Config) (driven.EmbeddingService, error) {
	ollamaSvc := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: cfg.OllamaBaseURL,
		Model:   cfg.OllamaEmbedModel,
	})

	switch cfg.Provider {
	case ProviderAuto, "":
		if cfg.GeminiAPIKey == "" {
			// No API key: auto degenerates to the local provider.
			return NewEmbeddingChain(ollamaSvc), nil
		}
		geminiSvc, err := geminiembed.NewEmbeddingService(geminiembed.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, err
		}
		return NewEmbeddingChain(geminiSvc, ollamaSvc), nil

	case ProviderGemini:
		geminiSvc, err := geminiembed.NewEmbeddingService(geminiembed.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, err
		}
		return NewEmbeddingChain(geminiSvc), nil

	case ProviderOllama:
		return NewEmbeddingChain(ollamaSvc), nil
	}

	return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
}

// NewLLMService builds the generation provider chain for the configured
// mode. Every chain ends with the degraded provider, so generation
// always produces some answer.
func NewLLMService(cfg Config) (driven.LLMService, error) {
	ollamaSvc := ollamallm.NewLLMService(ollamallm.Config{
		BaseURL: cfg.OllamaBaseURL,
		Model:   cfg.OllamaModel,
	})

	switch cfg.Provider {
	case ProviderAuto, "":
		if cfg.GeminiAPIKey == "" {
			return NewGenerationChain(ollamaSvc, NewDegradedLLM()), nil
		}
		geminiSvc, err := geminillm.NewLLMService(geminillm.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, err
		}
		return NewGenerationChain(geminiSvc, ollamaSvc, NewDegradedLLM()), nil

	case ProviderGemini:
		geminiSvc, err := geminillm.NewLLMService(geminillm.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, err
		}
		return NewGenerationChain(geminiSvc, NewDegradedLLM()), nil

	case ProviderOllama:
		return NewGenerationChain(ollamaSvc, NewDegradedLLM()), nil
	}

	return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
}
