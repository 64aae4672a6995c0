package vision

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gcvision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"docanalyzer/internal/logger"
)

const (
	// MaxFileSizeBytes is the maximum PDF size for synchronous processing (20MB)
	MaxFileSizeBytes = 20 * 1024 * 1024

	// MaxPagesSync is the maximum number of pages for synchronous processing
	MaxPagesSync = 5
)

// GoogleProvider implements Provider using Google Cloud Vision API.
type GoogleProvider struct {
	client *gcvision.ImageAnnotatorClient
	log    zerolog.Logger
}

// NewGoogleProvider creates a vision provider with credentials from the
// environment. It expects either GOOGLE_APPLICATION_CREDENTIALS path or
// GOOGLE_CREDENTIALS JSON in env, falling back to application default
// credentials.
func NewGoogleProvider(ctx context.Context) (*GoogleProvider, error) {
	const op = "NewGoogleProvider"

	var client *gcvision.ImageAnnotatorClient
	var err error

	// Check for inline credentials first
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = gcvision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = gcvision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = gcvision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleProvider{
		client: client,
		log:    logger.WithComponent("vision"),
	}, nil
}

// NewGoogleProviderWithClient creates a vision provider with an explicit
// client (for testing).
func NewGoogleProviderWithClient(client *gcvision.ImageAnnotatorClient) *GoogleProvider {
	return &GoogleProvider{
		client: client,
		log:    logger.WithComponent("vision"),
	}
}

// DetectText extracts text from an image using text detection.
func (g *GoogleProvider) DetectText(ctx context.Context, image []byte) (string, error) {
	const op = "DetectText"

	if len(image) == 0 {
		return "", WrapError(op, ErrEmptyImage, "")
	}

	resp, err := g.annotate(ctx, image, AnalysisText.Features())
	if err != nil {
		return "", WrapError(op, err, "")
	}

	// The first text annotation aggregates all detected text blocks.
	if len(resp.TextAnnotations) == 0 {
		return "", WrapError(op, ErrNoTextFound, "no text annotations in response")
	}

	return resp.TextAnnotations[0].Description, nil
}

// Annotate runs the requested annotation features over an image and reshapes
// the response.
func (g *GoogleProvider) Annotate(ctx context.Context, image []byte, kind AnalysisKind) (*Analysis, error) {
	const op = "Annotate"

	if len(image) == 0 {
		return nil, WrapError(op, ErrEmptyImage, "")
	}

	features := kind.Features()
	g.log.Debug().
		Str("kind", string(kind)).
		Int("features", len(features)).
		Int("image_bytes", len(image)).
		Msg("Annotating image")

	resp, err := g.annotate(ctx, image, features)
	if err != nil {
		return nil, WrapError(op, err, "")
	}

	analysis, err := parseAnnotateImageResponse(resp)
	if err != nil {
		return nil, WrapError(op, err, "failed to parse Vision API response")
	}

	g.log.Debug().
		Int("labels", len(analysis.Labels)).
		Int("objects", len(analysis.Objects)).
		Int("colors", len(analysis.Properties.DominantColors)).
		Int("text_length", len(analysis.Text)).
		Msg("Image annotation completed")

	return analysis, nil
}

// annotate issues a single-image annotation request and returns the raw
// per-image response after checking for API-level errors.
func (g *GoogleProvider) annotate(ctx context.Context, image []byte, features []*visionpb.Feature) (*visionpb.AnnotateImageResponse, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image:    &visionpb.Image{Content: image},
				Features: features,
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapError("annotate", ErrAnnotationFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}

	if len(resp.Responses) == 0 {
		return nil, WrapError("annotate", ErrAnnotationFailed, "no response from Vision API")
	}

	imgResp := resp.Responses[0]
	if imgResp.Error != nil {
		return nil, WrapError("annotate", ErrAnnotationFailed, fmt.Sprintf("Vision API error: %s", imgResp.Error.Message))
	}

	return imgResp, nil
}

// OCRPDF extracts text from a scanned PDF document.
func (g *GoogleProvider) OCRPDF(ctx context.Context, pdfData io.Reader) (*OCRResult, error) {
	const op = "OCRPDF"
	startTime := time.Now()

	pdfBytes, err := io.ReadAll(pdfData)
	if err != nil {
		return nil, WrapError(op, err, "failed to read PDF data")
	}

	if err := validatePDFBytes(pdfBytes); err != nil {
		return nil, WrapError(op, err, fmt.Sprintf("file size: %d bytes", len(pdfBytes)))
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  pdfBytes,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				Pages: nil, // Process all pages
			},
		},
	}

	resp, err := g.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return nil, WrapError(op, ErrAnnotationFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}

	if len(resp.Responses) == 0 {
		return nil, WrapError(op, ErrAnnotationFailed, "no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, WrapError(op, ErrAnnotationFailed, fmt.Sprintf("Vision API error: %s", fileResp.Error.Message))
	}

	result, err := parseAnnotateFileResponse(fileResp)
	if err != nil {
		return nil, WrapError(op, err, "failed to parse Vision API response")
	}

	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)

	g.log.Info().
		Int("page_count", result.PageCount).
		Float32("confidence", result.Confidence).
		Dur("duration", result.ProcessingDuration).
		Msg("PDF OCR completed")

	return result, nil
}

// validatePDFBytes checks the PDF size limit and header.
func validatePDFBytes(pdfBytes []byte) error {
	if len(pdfBytes) > MaxFileSizeBytes {
		return ErrPDFTooLarge
	}
	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return ErrInvalidPDF
	}
	return nil
}

// parseAnnotateFileResponse aggregates per-page OCR results into an OCRResult.
func parseAnnotateFileResponse(fileResp *visionpb.AnnotateFileResponse) (*OCRResult, error) {
	if len(fileResp.Responses) == 0 {
		return nil, ErrNoTextFound
	}

	var allText strings.Builder
	var confidenceSum float32
	var confidenceCount int
	languageSet := make(map[string]bool)
	pageCount := len(fileResp.Responses)

	if pageCount > MaxPagesSync {
		return nil, ErrTooManyPages
	}

	for pageIdx, page := range fileResp.Responses {
		if page.Error != nil {
			return nil, fmt.Errorf("error processing page %d: %s", pageIdx+1, page.Error.Message)
		}

		if page.FullTextAnnotation == nil {
			continue
		}

		if pageIdx > 0 {
			fmt.Fprintf(&allText, "\n\n--- Page %d ---\n\n", pageIdx+1)
		}
		allText.WriteString(page.FullTextAnnotation.Text)

		for _, textAnnotation := range page.TextAnnotations {
			if textAnnotation.Confidence > 0 {
				confidenceSum += textAnnotation.Confidence
				confidenceCount++
			}
		}

		for _, pageInfo := range page.FullTextAnnotation.Pages {
			for _, block := range pageInfo.Blocks {
				for _, paragraph := range block.Paragraphs {
					for _, word := range paragraph.Words {
						for _, symbol := range word.Symbols {
							if symbol.Property == nil {
								continue
							}
							for _, lang := range symbol.Property.DetectedLanguages {
								if lang.LanguageCode != "" {
									languageSet[lang.LanguageCode] = true
								}
							}
						}
					}
				}
			}
		}
	}

	var avgConfidence float32
	if confidenceCount > 0 {
		avgConfidence = confidenceSum / float32(confidenceCount)
	}

	var languages []string
	for lang := range languageSet {
		languages = append(languages, lang)
	}

	extractedText := allText.String()
	if strings.TrimSpace(extractedText) == "" {
		return nil, ErrNoTextFound
	}

	return &OCRResult{
		Text:          extractedText,
		PageCount:     pageCount,
		Confidence:    avgConfidence,
		LanguageCodes: languages,
	}, nil
}

// Close closes the underlying Vision client.
func (g *GoogleProvider) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
