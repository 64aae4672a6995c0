// Package ai provides generative question answering, summarization and
// image captioning backed by the Gemini API, plus embedding functions for
// vector indexing.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"docanalyzer/internal/logger"
)

var (
	// ErrMissingAPIKey is returned when no Gemini API key is configured.
	ErrMissingAPIKey = errors.New("missing Gemini API key")

	// ErrEmptyResponse is returned when the model produced no usable text.
	ErrEmptyResponse = errors.New("model returned no text")
)

// Gemini wraps a Gemini generative model client.
type Gemini struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
	log             zerolog.Logger
}

// NewGemini creates a Gemini client for the given model.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32, maxOutputTokens int32) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client:          client,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		log:             logger.WithComponent("ai"),
	}, nil
}

// Answer generates an answer to a question grounded in the given context
// chunks.
func (g *Gemini) Answer(ctx context.Context, question string, contextChunks []string) (string, error) {
	prompt := buildAnswerPrompt(question, contextChunks)
	return g.generate(ctx, genai.Text(prompt))
}

// Summarize produces a structured summary of the given chunks. An optional
// focus narrows the summary to a particular topic.
func (g *Gemini) Summarize(ctx context.Context, chunks []string, focus string) (string, error) {
	prompt := buildSummaryPrompt(chunks, focus)
	return g.generate(ctx, genai.Text(prompt))
}

// Caption generates a descriptive caption for an image. An empty prompt
// falls back to a default captioning instruction.
func (g *Gemini) Caption(ctx context.Context, image []byte, prompt string) (string, error) {
	if prompt == "" {
		prompt = defaultCaptionPrompt
	}
	return g.generate(ctx, genai.Text(prompt), genai.ImageData(imageFormat(image), image))
}

func (g *Gemini) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	model.SetMaxOutputTokens(g.maxOutputTokens)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		g.log.Error().Err(err).Str("model", g.model).Msg("Content generation failed")
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	if resp.UsageMetadata != nil {
		g.log.Debug().
			Str("model", g.model).
			Int32("total_tokens", resp.UsageMetadata.TotalTokenCount).
			Msg("Content generated")
	}

	return text, nil
}

// responseText concatenates the text parts of all candidates.
func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

// imageFormat sniffs the image format expected by genai.ImageData from the
// raw bytes ("jpeg", "png", ...).
func imageFormat(image []byte) string {
	mime := http.DetectContentType(image)
	if f, ok := strings.CutPrefix(mime, "image/"); ok {
		return f
	}
	return "jpeg"
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
