// Package document implements the document and image processing pipeline:
// PDF text extraction, chunking, vector indexing, and delegation of image
// operations to a vision provider.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog"

	"docanalyzer/internal/vectorstore"
	"docanalyzer/internal/vision"
)

// Services bundles the external service clients a Processor may use.
// Image operations require Vision; document-only pipelines can leave it nil.
type Services struct {
	Vision vision.Provider
}

// Processor orchestrates PDF text extraction, chunking, vector indexing and
// image analysis. It holds no mutable state across calls; concurrent use is
// safe to the extent the injected clients are.
type Processor struct {
	services Services
	splitter *Splitter
	log      zerolog.Logger
}

// NewProcessor creates a Processor with the given services and splitter.
// A nil splitter falls back to the default chunk configuration.
func NewProcessor(services Services, splitter *Splitter, log zerolog.Logger) *Processor {
	if splitter == nil {
		splitter = NewSplitter(DefaultChunkSize, DefaultChunkOverlap)
	}
	return &Processor{
		services: services,
		splitter: splitter,
		log:      log,
	}
}

// ExtractText extracts and concatenates the plain text of every page of
// every supplied PDF, in order. Pages that yield no text contribute an empty
// string. Zero sources yield an empty string, not an error. Any parse error
// aborts the whole batch.
func (p *Processor) ExtractText(sources ...io.Reader) (string, error) {
	const op = "ExtractText"

	var text strings.Builder
	for i, src := range sources {
		data, err := io.ReadAll(src)
		if err != nil {
			p.log.Error().Err(err).Int("source", i+1).Msg("Failed to read PDF source")
			return "", WrapError(op, ErrExtractionFailed, fmt.Sprintf("source %d: %v", i+1, err))
		}

		reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			p.log.Error().Err(err).Int("source", i+1).Msg("Failed to parse PDF")
			return "", WrapError(op, ErrExtractionFailed, fmt.Sprintf("source %d: %v", i+1, err))
		}

		for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
			page := reader.Page(pageNum)
			if page.V.IsNull() {
				continue
			}
			content, err := page.GetPlainText(nil)
			if err != nil {
				// Pages that fail to yield text contribute nothing.
				p.log.Warn().Err(err).Int("source", i+1).Int("page", pageNum).Msg("Page yielded no text")
				continue
			}
			text.WriteString(content)
		}
	}

	p.log.Debug().Int("sources", len(sources)).Int("text_length", text.Len()).Msg("Text extraction completed")
	return text.String(), nil
}

// ExtractFiles opens the given PDF paths and extracts their concatenated text.
func (p *Processor) ExtractFiles(paths ...string) (string, error) {
	const op = "ExtractFiles"

	readers := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return "", WrapError(op, ErrExtractionFailed, err.Error())
		}
		defer f.Close()
		readers = append(readers, f)
	}

	return p.ExtractText(readers...)
}

// SplitText breaks text into overlapping chunks using the configured splitter.
func (p *Processor) SplitText(text string) []string {
	chunks := p.splitter.Split(text)
	p.log.Debug().Int("chunks", len(chunks)).Msg("Text split into chunks")
	return chunks
}

// BuildVectorStore builds a vector index over the chunks with the supplied
// embedding function.
func (p *Processor) BuildVectorStore(ctx context.Context, chunks []string, embeddingFunc chromem.EmbeddingFunc) (*vectorstore.Store, error) {
	const op = "BuildVectorStore"

	store, err := vectorstore.Build(ctx, chunks, embeddingFunc)
	if err != nil {
		p.log.Error().Err(err).Int("chunks", len(chunks)).Msg("Vector store creation failed")
		return nil, WrapError(op, ErrIndexingFailed, err.Error())
	}

	p.log.Info().Int("chunks", store.Count()).Msg("Vector store created")
	return store, nil
}

// ExtractImageText extracts text from an image via the vision provider.
// Returns ErrVisionNotConfigured when no provider was supplied, and
// vision.ErrNoTextFound when the image contains no detectable text.
func (p *Processor) ExtractImageText(ctx context.Context, image []byte) (string, error) {
	const op = "ExtractImageText"

	if p.services.Vision == nil {
		return "", WrapError(op, ErrVisionNotConfigured, "")
	}

	text, err := p.services.Vision.DetectText(ctx, image)
	if err != nil {
		p.log.Error().Err(err).Int("image_bytes", len(image)).Msg("Image text detection failed")
		return "", WrapError(op, err, "")
	}

	return text, nil
}

// AnalyzeImage runs the requested annotation features over an image and
// returns the reshaped analysis. The result always carries all sections,
// empty for annotation types that were not requested or not detected.
func (p *Processor) AnalyzeImage(ctx context.Context, image []byte, kind vision.AnalysisKind) (*vision.Analysis, error) {
	const op = "AnalyzeImage"

	if p.services.Vision == nil {
		return nil, WrapError(op, ErrVisionNotConfigured, "")
	}

	analysis, err := p.services.Vision.Annotate(ctx, image, kind)
	if err != nil {
		p.log.Error().Err(err).Str("kind", string(kind)).Msg("Image analysis failed")
		return nil, WrapError(op, err, "")
	}

	return analysis, nil
}

// OCRPDF extracts text from a scanned PDF via the vision provider's document
// text detection. Use it for PDFs with no extractable text layer.
func (p *Processor) OCRPDF(ctx context.Context, pdfData io.Reader) (*vision.OCRResult, error) {
	const op = "OCRPDF"

	if p.services.Vision == nil {
		return nil, WrapError(op, ErrVisionNotConfigured, "")
	}

	result, err := p.services.Vision.OCRPDF(ctx, pdfData)
	if err != nil {
		p.log.Error().Err(err).Msg("PDF OCR failed")
		return nil, WrapError(op, err, "")
	}

	return result, nil
}
