package ai

import (
	"context"

	"github.com/panuwat-dev/docchat/internal/core/ports/driven"
)

// excerptLimit caps how much of the context is echoed in a degraded
// answer, in runes.
const excerptLimit = 1500

// Ensure DegradedLLM implements the interface.
var _ driven.LLMService = (*DegradedLLM)(nil)

// DegradedLLM is the terminal element of a generation chain. It never
// fails: when every real provider is down it answers with a fixed
// explanation, an excerpt of the retrieved context, and remediation
// guidance. Availability wins over answer quality.
type DegradedLLM struct{}

// NewDegradedLLM creates the terminal fallback provider.
func NewDegradedLLM() *DegradedLLM {
	return &DegradedLLM{}
}

// Generate returns the degraded answer. The error is always nil.
func (d *DegradedLLM) Generate(_ context.Context, _, contextText string) (string, error) {
	excerpt := contextText
	suffix := ""
	// Truncate on a rune boundary so multibyte text stays valid UTF-8.
	if runes := []rune(excerpt); len(runes) > excerptLimit {
		excerpt = string(runes[:excerptLimit])
		suffix = "..."
	}

	return "**The AI service is temporarily unavailable** (API quota exhausted or the local model is not running).\n\n" +
		"However, related content was found in the documents:\n\n" +
		"---\n" + excerpt + suffix + "\n---\n\n" +
		"**How to fix:**\n" +
		"- Check your Gemini API quota at https://ai.google.dev/\n" +
		"- Or install Ollama (https://ollama.ai/) and run: ollama pull llama3.2", nil
}

// ProviderName identifies the provider for logging.
func (d *DegradedLLM) ProviderName() string {
	return "degraded"
}
