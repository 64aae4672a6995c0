package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"docanalyzer/internal/ai"
	"docanalyzer/internal/logger"
)

// summaryRetrievalK is how many chunks are retrieved as summary input.
// Wider than question answering since summaries need broader coverage.
const summaryRetrievalK = 7

var summarizeCmd = &cobra.Command{
	Use:   "summarize [pdf-file]...",
	Short: "Generate a structured summary of one or more PDF documents",
	Long: `Extract text from the given PDF documents, index it, and generate a
structured markdown summary of the most relevant passages using Gemini.

An optional focus narrows the summary to a particular topic.

Required environment variables:
  GEMINI_API_KEY - Gemini API key for generation and embeddings`,
	Example: `  # Summarize a document
  docanalyzer summarize report.pdf

  # Summarize with a focus
  docanalyzer summarize report.pdf --focus "financial results"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().String("focus", "", "Optional topic to focus the summary on")
	summarizeCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summarize")

	focus, _ := cmd.Flags().GetString("focus")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	log.Info().
		Int("documents", len(args)).
		Str("focus", focus).
		Msg("Starting document summarization")

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

	embeddingFunc, closeEmbeddings, err := ai.NewEmbeddingFunc(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeEmbeddings()

	store, err := proc.BuildVectorStore(ctx, chunks, embeddingFunc)
	if err != nil {
		return err
	}

	query := focus
	if query == "" {
		query = "key points, core concepts, conclusions"
	}

	hits, err := store.Search(ctx, query, summaryRetrievalK, 0)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	summaryInput := make([]string, 0, len(hits))
	for _, hit := range hits {
		summaryInput = append(summaryInput, hit.Content)
	}

	gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GenerativeModel, cfg.Temperature, cfg.MaxOutputTokens)
	if err != nil {
		return err
	}
	defer gemini.Close()

	summary, err := gemini.Summarize(ctx, summaryInput, focus)
	if err != nil {
		return fmt.Errorf("summary generation failed: %w", err)
	}

	log.Info().
		Int("input_chunks", len(summaryInput)).
		Dur("duration", time.Since(startTime)).
		Msg("Summary generated")

	fmt.Println(summary)
	return nil
}
