package driven

import "context"

// LLMService produces a natural-language answer from a question and the
// assembled grounding context.
//
// Implementations include the Gemini API, a local Ollama endpoint, and
// the fallback chain whose terminal element always succeeds with a
// degraded non-LLM answer.
type LLMService interface {
	// Generate answers the question using only the supplied context text.
	Generate(ctx context.Context, question, contextText string) (string, error)

	// ProviderName identifies the provider for logging.
	ProviderName() string
}
