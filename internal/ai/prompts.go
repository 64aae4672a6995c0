package ai

import (
	"fmt"
	"strings"
)

const defaultCaptionPrompt = `Analyze this image and generate a detailed caption covering:
1. Main subjects and their relationships
2. Contextual environment
3. Visual composition
4. Atmosphere/tone`

const defaultSummaryFocus = "Provide a comprehensive summary of the key points"

// buildAnswerPrompt assembles a grounded QA prompt from the retrieved
// context chunks and the user question.
func buildAnswerPrompt(question string, contextChunks []string) string {
	if len(contextChunks) == 0 {
		return question
	}

	var b strings.Builder
	b.WriteString("Based on the following context, provide a comprehensive answer to the question.\n\n")
	for i, chunk := range contextChunks {
		fmt.Fprintf(&b, "Context %d:\n%s\n\n", i+1, chunk)
	}
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	b.WriteString(`Please provide a detailed answer that:
1. Directly addresses the question
2. References the context when relevant
3. Uses markdown formatting for better readability`)

	return b.String()
}

// buildSummaryPrompt assembles a summarization prompt over the given chunks,
// optionally narrowed to a focus topic.
func buildSummaryPrompt(chunks []string, focus string) string {
	var b strings.Builder
	b.WriteString("Synthesize key information from these documents:\n\n")
	for i, chunk := range chunks {
		fmt.Fprintf(&b, "Document %d:\n%s\n\n", i+1, chunk)
	}
	if focus == "" {
		focus = defaultSummaryFocus
	}
	fmt.Fprintf(&b, "Focus: %s\n\n", focus)
	b.WriteString(`Include in the summary:
- Core concepts and themes
- Critical details and data points
- Technical terminology explanations
- Conclusions and implications

Structured Summary (use markdown headings):`)

	return b.String()
}
