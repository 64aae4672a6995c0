package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"docanalyzer/internal/ai"
	"docanalyzer/internal/logger"
)

var askCmd = &cobra.Command{
	Use:   "ask [pdf-file]...",
	Short: "Answer a question about one or more PDF documents",
	Long: `Extract text from the given PDF documents, index it for retrieval, and
answer a question grounded in the most relevant passages using Gemini.

Required environment variables:
  GEMINI_API_KEY - Gemini API key for generation and embeddings`,
	Example: `  # Ask a question about a single document
  docanalyzer ask thesis.pdf -q "What methodology was used?"

  # Ask across multiple documents
  docanalyzer ask ch1.pdf ch2.pdf ch3.pdf -q "Summarize the main argument"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringP("question", "q", "", "Question to answer (required)")
	askCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ask")

	question, _ := cmd.Flags().GetString("question")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	log.Info().
		Int("documents", len(args)).
		Str("question", question).
		Msg("Starting document question answering")

	for _, path := range args {
		if _, err := validateInputFile(path, log); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if err := cfg.RequireGemini(); err != nil {
		return err
	}
	if err := cfg.RequireEmbeddings(); err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	proc := newProcessor(cfg, nil, logger.WithComponent("document"))

	startTime := time.Now()

	text, err := proc.ExtractFiles(args...)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no text could be extracted from the given documents")
	}

	chunks := proc.SplitText(text)
	log.Info().
		Int("text_length", len(text)).
		Int("chunks", len(chunks)).
		Msg("Documents extracted and chunked")

	embeddingFunc, closeEmbeddings, err := ai.NewEmbeddingFunc(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeEmbeddings()

	store, err := proc.BuildVectorStore(ctx, chunks, embeddingFunc)
	if err != nil {
		return err
	}

	hits, err := store.Search(ctx, question, cfg.TopK, cfg.MinSimilarity)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	contextChunks := make([]string, 0, len(hits))
	for _, hit := range hits {
		contextChunks = append(contextChunks, hit.Content)
	}

	gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GenerativeModel, cfg.Temperature, cfg.MaxOutputTokens)
	if err != nil {
		return err
	}
	defer gemini.Close()

	answer, err := gemini.Answer(ctx, question, contextChunks)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}

	log.Info().
		Int("context_chunks", len(contextChunks)).
		Dur("duration", time.Since(startTime)).
		Msg("Answer generated")

	fmt.Println(answer)
	return nil
}
