package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panuwat-dev/docchat/internal/adapters/driven/ai"
	"github.com/panuwat-dev/docchat/internal/adapters/driven/storage/sqlite"
	"github.com/panuwat-dev/docchat/internal/config"
	"github.com/panuwat-dev/docchat/internal/core/services"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question over the ingested documents",
	Long: `Runs one retrieval-augmented query against the local corpus and prints
the answer with its sources. Uses the same store and providers as serve.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	aiCfg := ai.Config{
		Provider:         cfg.AI.Provider,
		GeminiAPIKey:     cfg.AI.GeminiAPIKey,
		OllamaBaseURL:    cfg.AI.OllamaBaseURL,
		OllamaModel:      cfg.AI.OllamaModel,
		OllamaEmbedModel: cfg.AI.OllamaEmbedModel,
	}
	embedder, err := ai.NewEmbeddingService(aiCfg)
	if err != nil {
		return fmt.Errorf("configuring embedding providers: %w", err)
	}
	llm, err := ai.NewLLMService(aiCfg)
	if err != nil {
		return fmt.Errorf("configuring generation providers: %w", err)
	}

	chat := services.NewChatService(store, embedder, llm, nil)

	result, err := chat.Query(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(result.Answer)
	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range result.Sources {
			cmd.Printf("  [%d%%] %s\n", src.Relevance, src.DocumentName)
		}
	}
	return nil
}
