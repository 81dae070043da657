package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/panuwat-dev/docchat/internal/adapters/driven/ai"
	"github.com/panuwat-dev/docchat/internal/adapters/driven/storage/sqlite"
	"github.com/panuwat-dev/docchat/internal/adapters/driving/httpapi"
	"github.com/panuwat-dev/docchat/internal/config"
	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/services"
	"github.com/panuwat-dev/docchat/internal/logger"
	"github.com/panuwat-dev/docchat/internal/parsers"
	"github.com/panuwat-dev/docchat/internal/parsers/docx"
	"github.com/panuwat-dev/docchat/internal/parsers/pdf"
	"github.com/panuwat-dev/docchat/internal/parsers/plaintext"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the document question-answering server with its background ingestion worker.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set")
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	logger.Info("database ready at %s", store.Path())

	imagesDir := filepath.Join(cfg.Storage.UploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0750); err != nil {
		return fmt.Errorf("creating images directory: %w", err)
	}

	docxParser := docx.New()
	docxParser.SetImagesDir(imagesDir)
	registry := parsers.NewRegistry(pdf.New(), docxParser, plaintext.New())

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
	logger.Info("embedding providers: %s", embedder.ProviderName())
	logger.Info("generation providers: %s", llm.ProviderName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ingestor := services.NewIngestor(store, registry, embedder, docxParser)
	ingestor.Start(ctx)
	defer ingestor.Stop()

	requeueUnfinished(ctx, store, ingestor)

	docService := services.NewDocumentService(store, registry, ingestor, cfg.Storage.UploadsDir)
	chatService := services.NewChatService(store, embedder, llm, nil)

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := httpapi.NewServer(chatService, docService, cfg.Admin.Password, cfg.Storage.UploadsDir)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", cfg.Addr())
		errCh <- server.Run(cfg.Addr())
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errCh:
		return err
	}
}

// requeueUnfinished re-enqueues documents whose ingestion never finished,
// typically after an unclean shutdown. The stored file is the job input.
func requeueUnfinished(ctx context.Context, store *sqlite.Store, ingestor *services.Ingestor) {
	docs, err := store.ListDocuments(ctx)
	if err != nil {
		logger.Warn("listing documents for requeue: %v", err)
		return
	}

	for i := range docs {
		doc := &docs[i]
		if doc.Status != domain.StatusPending && doc.Status != domain.StatusProcessing {
			continue
		}
		data, err := os.ReadFile(doc.Filepath)
		if err != nil {
			logger.Warn("requeueing document %s: %v", doc.ID, err)
			if statusErr := store.SetIngestStatus(ctx, doc.ID, domain.StatusFailed, "stored file missing"); statusErr != nil {
				logger.Warn("marking document %s failed: %v", doc.ID, statusErr)
			}
			continue
		}
		if err := ingestor.Enqueue(ctx, doc.ID, doc.FileType, data); err != nil {
			logger.Warn("requeueing document %s: %v", doc.ID, err)
			continue
		}
		logger.Info("requeued unfinished document %s", doc.ID)
	}
}
