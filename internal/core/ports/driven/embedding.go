package driven

import "context"

// EmbeddingService turns text into a fixed-length float vector.
// Vector dimensionality is provider-specific and opaque to callers; two
// vectors are only comparable when produced by the same provider.
//
// Implementations include the Gemini API, a local Ollama endpoint, and
// the fallback chain that tries several providers in order.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one embedding per input text, order-preserving.
	// Texts are processed sequentially with a small inter-call pause to
	// respect provider rate limits; the first failure aborts the batch.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ProviderName identifies the provider for logging.
	ProviderName() string
}
