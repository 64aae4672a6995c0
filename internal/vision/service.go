// Package vision provides image and document analysis capabilities using
// Google Cloud Vision API.
//
// The package supports plain text detection on images, multi-feature image
// annotation (labels, localized objects, dominant colors, text), and OCR of
// scanned PDF documents via document text detection.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//
// Cloud Vision API Limitations:
//   - Maximum PDF size: 20MB for synchronous processing
//   - Maximum pages: 5 pages for synchronous processing
//   - For larger documents, consider asynchronous processing with Cloud Storage
package vision

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

// AnalysisKind selects which annotation features an image analysis requests.
type AnalysisKind string

const (
	// AnalysisFull requests label detection, object localization, image
	// properties and text detection in a single call.
	AnalysisFull AnalysisKind = "full"

	// AnalysisLabels requests label detection only.
	AnalysisLabels AnalysisKind = "labels"

	// AnalysisObjects requests object localization only.
	AnalysisObjects AnalysisKind = "objects"

	// AnalysisText requests text detection only.
	AnalysisText AnalysisKind = "text"

	// AnalysisProperties requests image properties (dominant colors) only.
	AnalysisProperties AnalysisKind = "properties"
)

// Features returns the Vision API feature set for the analysis kind.
// Unknown kinds fall back to the full feature set.
func (k AnalysisKind) Features() []*visionpb.Feature {
	switch k {
	case AnalysisLabels:
		return []*visionpb.Feature{{Type: visionpb.Feature_LABEL_DETECTION}}
	case AnalysisObjects:
		return []*visionpb.Feature{{Type: visionpb.Feature_OBJECT_LOCALIZATION}}
	case AnalysisText:
		return []*visionpb.Feature{{Type: visionpb.Feature_TEXT_DETECTION}}
	case AnalysisProperties:
		return []*visionpb.Feature{{Type: visionpb.Feature_IMAGE_PROPERTIES}}
	default:
		return []*visionpb.Feature{
			{Type: visionpb.Feature_LABEL_DETECTION},
			{Type: visionpb.Feature_OBJECT_LOCALIZATION},
			{Type: visionpb.Feature_IMAGE_PROPERTIES},
			{Type: visionpb.Feature_TEXT_DETECTION},
		}
	}
}

// Valid reports whether k names a known analysis kind.
func (k AnalysisKind) Valid() bool {
	switch k {
	case AnalysisFull, AnalysisLabels, AnalysisObjects, AnalysisText, AnalysisProperties:
		return true
	}
	return false
}

// Provider defines the interface for image analysis services.
type Provider interface {
	// DetectText extracts text from an image.
	DetectText(ctx context.Context, image []byte) (string, error)

	// Annotate runs the requested annotation features over an image and
	// returns the reshaped result.
	Annotate(ctx context.Context, image []byte, kind AnalysisKind) (*Analysis, error)

	// OCRPDF extracts text from a scanned PDF document using document
	// text detection. Returns concatenated text from all pages with
	// confidence and language metadata.
	OCRPDF(ctx context.Context, pdfData io.Reader) (*OCRResult, error)

	// Close releases the underlying client resources.
	Close() error
}

// Label is a detected image label with its confidence score.
type Label struct {
	Description string  `json:"description"`
	Score       float32 `json:"score"`
}

// Vertex is a normalized (0-1) bounding polygon vertex.
type Vertex struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Object is a localized object detection with its normalized bounding polygon.
type Object struct {
	Name         string   `json:"name"`
	Score        float32  `json:"score"`
	BoundingPoly []Vertex `json:"bounding_poly"`
}

// ColorInfo is a dominant color entry with its coverage statistics.
type ColorInfo struct {
	Color         string  `json:"color"`
	Score         float32 `json:"score"`
	PixelFraction float32 `json:"pixel_fraction"`
}

// Properties holds the image-properties annotation section.
type Properties struct {
	DominantColors []ColorInfo `json:"dominant_colors"`
}

// Analysis is the reshaped result of an image annotation call. All sections
// are always present; annotation types absent from the response yield empty
// values rather than missing fields.
type Analysis struct {
	Text       string          `json:"text"`
	Labels     []Label         `json:"labels"`
	Objects    []Object        `json:"objects"`
	Properties Properties      `json:"properties"`
	Raw        json.RawMessage `json:"full_response,omitempty"`
}

// OCRResult contains the results of PDF OCR processing with metadata.
type OCRResult struct {
	// Text is the extracted text content from all pages, concatenated in
	// reading order.
	Text string `json:"text"`

	// PageCount is the number of pages that were processed.
	PageCount int `json:"page_count"`

	// Confidence is the average confidence score across all detected text
	// (0.0 to 1.0).
	Confidence float32 `json:"confidence"`

	// LanguageCodes contains the detected languages in the document.
	LanguageCodes []string `json:"language_codes,omitempty"`

	// ProcessedAt is the timestamp when processing completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long the OCR processing took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}
