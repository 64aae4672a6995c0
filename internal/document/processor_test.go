package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"docanalyzer/internal/vision"
)

// fakeVision is a stub vision provider for processor tests.
type fakeVision struct {
	text     string
	analysis *vision.Analysis
	ocr      *vision.OCRResult
	err      error
}

func (f *fakeVision) DetectText(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

func (f *fakeVision) Annotate(ctx context.Context, image []byte, kind vision.AnalysisKind) (*vision.Analysis, error) {
	return f.analysis, f.err
}

func (f *fakeVision) OCRPDF(ctx context.Context, pdfData io.Reader) (*vision.OCRResult, error) {
	return f.ocr, f.err
}

func (f *fakeVision) Close() error { return nil }

func newTestProcessor(v vision.Provider) *Processor {
	return NewProcessor(Services{Vision: v}, NewSplitter(100, 20), zerolog.Nop())
}

func TestExtractTextNoSources(t *testing.T) {
	p := newTestProcessor(nil)

	text, err := p.ExtractText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty string for zero sources, got %q", text)
	}
}

func TestExtractTextInvalidPDF(t *testing.T) {
	p := newTestProcessor(nil)

	_, err := p.ExtractText(bytes.NewReader([]byte("this is not a pdf document")))
	if err == nil {
		t.Fatal("expected error for invalid PDF data")
	}
	if !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractTextBatchAllOrNothing(t *testing.T) {
	p := newTestProcessor(nil)

	// Second source is invalid: the whole batch must fail with no partial text.
	text, err := p.ExtractText(
		bytes.NewReader([]byte("garbage one")),
		bytes.NewReader([]byte("garbage two")),
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if text != "" {
		t.Errorf("expected no partial result, got %q", text)
	}
}

func TestSplitTextDelegates(t *testing.T) {
	p := newTestProcessor(nil)

	chunks := p.SplitText(strings.Repeat("z", 50))
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestExtractImageTextWithoutVision(t *testing.T) {
	p := newTestProcessor(nil)

	_, err := p.ExtractImageText(context.Background(), []byte{0x01})
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !errors.Is(err, ErrVisionNotConfigured) {
		t.Errorf("expected ErrVisionNotConfigured, got %v", err)
	}
}

func TestAnalyzeImageWithoutVision(t *testing.T) {
	p := newTestProcessor(nil)

	_, err := p.AnalyzeImage(context.Background(), []byte{0x01}, vision.AnalysisFull)
	if !errors.Is(err, ErrVisionNotConfigured) {
		t.Errorf("expected ErrVisionNotConfigured, got %v", err)
	}
}

func TestOCRPDFWithoutVision(t *testing.T) {
	p := newTestProcessor(nil)

	_, err := p.OCRPDF(context.Background(), strings.NewReader("%PDF-1.4"))
	if !errors.Is(err, ErrVisionNotConfigured) {
		t.Errorf("expected ErrVisionNotConfigured, got %v", err)
	}
}

func TestExtractImageText(t *testing.T) {
	p := newTestProcessor(&fakeVision{text: "Hello World"})

	text, err := p.ExtractImageText(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello World" {
		t.Errorf("expected %q, got %q", "Hello World", text)
	}
}

func TestExtractImageTextNoTextFound(t *testing.T) {
	p := newTestProcessor(&fakeVision{err: vision.ErrNoTextFound})

	_, err := p.ExtractImageText(context.Background(), []byte{0x01})
	if !errors.Is(err, vision.ErrNoTextFound) {
		t.Errorf("expected ErrNoTextFound, got %v", err)
	}
}

func TestAnalyzeImagePassesThrough(t *testing.T) {
	want := &vision.Analysis{
		Text:   "sign",
		Labels: []vision.Label{{Description: "street", Score: 0.9}},
	}
	p := newTestProcessor(&fakeVision{analysis: want})

	got, err := p.AnalyzeImage(context.Background(), []byte{0x01}, vision.AnalysisLabels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Error("expected analysis to be passed through unchanged")
	}
}
