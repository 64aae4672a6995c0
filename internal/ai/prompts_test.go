package ai

import (
	"strings"
	"testing"
)

func TestBuildAnswerPromptWithContext(t *testing.T) {
	prompt := buildAnswerPrompt("What is the capital of France?", []string{
		"France is a country in Europe.",
		"Paris is the capital of France.",
	})

	if !strings.Contains(prompt, "What is the capital of France?") {
		t.Error("expected prompt to contain the question")
	}
	if !strings.Contains(prompt, "Context 1:\nFrance is a country in Europe.") {
		t.Error("expected first chunk labeled Context 1")
	}
	if !strings.Contains(prompt, "Context 2:\nParis is the capital of France.") {
		t.Error("expected second chunk labeled Context 2")
	}
}

func TestBuildAnswerPromptNoContext(t *testing.T) {
	question := "What is the capital of France?"
	if got := buildAnswerPrompt(question, nil); got != question {
		t.Errorf("expected bare question without context, got %q", got)
	}
}

func TestBuildSummaryPromptDefaultFocus(t *testing.T) {
	prompt := buildSummaryPrompt([]string{"chunk one"}, "")

	if !strings.Contains(prompt, "Document 1:\nchunk one") {
		t.Error("expected chunk labeled Document 1")
	}
	if !strings.Contains(prompt, defaultSummaryFocus) {
		t.Error("expected default focus when none given")
	}
}

func TestBuildSummaryPromptCustomFocus(t *testing.T) {
	prompt := buildSummaryPrompt([]string{"chunk"}, "financial risks")

	if !strings.Contains(prompt, "Focus: financial risks") {
		t.Error("expected custom focus in prompt")
	}
	if strings.Contains(prompt, defaultSummaryFocus) {
		t.Error("default focus should be replaced by the custom one")
	}
}

func TestImageFormat(t *testing.T) {
	// Minimal PNG header is enough for content sniffing.
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	if got := imageFormat(png); got != "png" {
		t.Errorf("expected png, got %q", got)
	}

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	if got := imageFormat(jpeg); got != "jpeg" {
		t.Errorf("expected jpeg, got %q", got)
	}

	if got := imageFormat([]byte("plain text, not an image")); got != "jpeg" {
		t.Errorf("expected jpeg fallback for unknown data, got %q", got)
	}
}
