package ai

import (
	"context"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/philippgille/chromem-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"docanalyzer/internal/config"
)

// NewEmbeddingFunc returns an embedding function for the configured provider
// along with a close function releasing any held client resources.
// Default provider is Google Generative AI (text-embedding-004).
func NewEmbeddingFunc(ctx context.Context, cfg *config.Config) (chromem.EmbeddingFunc, func() error, error) {
	switch cfg.EmbeddingsProvider {
	case "google", "":
		if cfg.GeminiAPIKey == "" {
			return nil, nil, fmt.Errorf("missing GEMINI_API_KEY for embeddings")
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create embeddings client: %w", err)
		}
		model := client.EmbeddingModel(cfg.EmbeddingModel)

		fn := func(ctx context.Context, text string) ([]float32, error) {
			resp, err := model.EmbedContent(ctx, genai.Text(text))
			if err != nil {
				return nil, err
			}
			if resp.Embedding == nil {
				return nil, fmt.Errorf("no embedding returned")
			}
			return resp.Embedding.Values, nil
		}
		return fn, client.Close, nil

	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, fmt.Errorf("missing OPENAI_API_KEY for embeddings")
		}
		client := openai.NewClient(cfg.OpenAIAPIKey)

		fn := func(ctx context.Context, text string) ([]float32, error) {
			resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
				Input: []string{text},
				Model: openai.EmbeddingModel(cfg.OpenAIEmbeddingModel),
			})
			if err != nil {
				return nil, err
			}
			if len(resp.Data) == 0 {
				return nil, fmt.Errorf("no embedding returned")
			}
			return resp.Data[0].Embedding, nil
		}
		return fn, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown embeddings provider: %s", cfg.EmbeddingsProvider)
	}
}
