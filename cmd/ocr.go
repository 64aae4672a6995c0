package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docanalyzer/internal/logger"
	"docanalyzer/internal/vision"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [image-or-pdf-file]",
	Short: "Extract text from an image or scanned PDF using Google Cloud Vision OCR",
	Long: `Extract all text content from an image or a scanned PDF file using
Google Cloud Vision API.

Images are processed with text detection. PDF files are processed with
document text detection, which supports multi-page PDFs up to 5 pages and
20MB in size for synchronous processing.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Extract text from a photo to stdout
  docanalyzer ocr receipt.jpg

  # Extract text from a scanned PDF and save it
  docanalyzer ocr scan.pdf -o extracted.txt

  # Include metadata and output as JSON
  docanalyzer ocr scan.pdf --metadata --json -o result.json

  # Process with custom timeout
  docanalyzer ocr large-scan.pdf --timeout 600`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

// OCROutput represents the JSON output structure when --json flag is used
type OCROutput struct {
	Text               string    `json:"text"`
	PageCount          int       `json:"page_count,omitempty"`
	Confidence         float32   `json:"confidence,omitempty"`
	LanguageCodes      []string  `json:"language_codes,omitempty"`
	ProcessedAt        time.Time `json:"processed_at,omitempty"`
	ProcessingDuration string    `json:"processing_duration,omitempty"`
	FileName           string    `json:"file_name"`
	FileSize           int64     `json:"file_size"`
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	ocrCmd.Flags().BoolP("metadata", "m", false, "Include metadata in output")
	ocrCmd.Flags().Bool("json", false, "Output as JSON")
	ocrCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runOCR(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ocr")

	outputPath, _ := cmd.Flags().GetString("output")
	includeMetadata, _ := cmd.Flags().GetBool("metadata")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	inputPath := args[0]

	log.Info().
		Str("file", inputPath).
		Str("output", outputPath).
		Bool("json", jsonOutput).
		Int("timeout", timeoutSecs).
		Msg("Starting OCR processing")

	fileInfo, err := validateInputFile(inputPath, log)
	if err != nil {
		return err
	}

	if isPDF(inputPath) && fileInfo.Size() > vision.MaxFileSizeBytes {
		log.Error().
			Str("file", inputPath).
			Int64("size", fileInfo.Size()).
			Int64("max_size", vision.MaxFileSizeBytes).
			Msg("PDF file exceeds maximum size limit")
		return fmt.Errorf("PDF file too large (%d bytes). Maximum size is %d bytes (20MB)",
			fileInfo.Size(), vision.MaxFileSizeBytes)
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	provider, err := createVisionProvider(ctx, log)
	if err != nil {
		return err
	}
	defer provider.Close()

	proc := newProcessor(cfg, provider, logger.WithComponent("document"))

	startTime := time.Now()
	var result *vision.OCRResult

	if isPDF(inputPath) {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open PDF file: %w", err)
		}
		defer f.Close()

		result, err = proc.OCRPDF(ctx, f)
		if err != nil {
			return handleVisionError(err, log)
		}
	} else {
		imageBytes, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to read image file: %w", err)
		}

		text, err := proc.ExtractImageText(ctx, imageBytes)
		if err != nil {
			return handleVisionError(err, log)
		}
		result = &vision.OCRResult{
			Text:               text,
			ProcessedAt:        time.Now(),
			ProcessingDuration: time.Since(startTime),
		}
	}

	log.Info().
		Int("page_count", result.PageCount).
		Float32("confidence", result.Confidence).
		Dur("duration", time.Since(startTime)).
		Int("text_length", len(result.Text)).
		Msg("OCR processing completed successfully")

	return outputOCRResults(result, fileInfo, outputPath, jsonOutput, includeMetadata, log)
}

// outputOCRResults formats and writes the OCR results
func outputOCRResults(result *vision.OCRResult, fileInfo os.FileInfo, outputPath string, jsonOutput, includeMetadata bool, log zerolog.Logger) error {
	var output strings.Builder
	var outputData []byte
	var err error

	if jsonOutput {
		ocrOutput := OCROutput{
			Text:               result.Text,
			FileName:           filepath.Base(fileInfo.Name()),
			FileSize:           fileInfo.Size(),
			PageCount:          result.PageCount,
			Confidence:         result.Confidence,
			LanguageCodes:      result.LanguageCodes,
			ProcessedAt:        result.ProcessedAt,
			ProcessingDuration: result.ProcessingDuration.String(),
		}

		outputData, err = json.MarshalIndent(ocrOutput, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
	} else {
		if includeMetadata {
			output.WriteString(fmt.Sprintf("=== OCR Results for %s ===\n", filepath.Base(fileInfo.Name())))
			output.WriteString(fmt.Sprintf("File size: %d bytes\n", fileInfo.Size()))
			if result.PageCount > 0 {
				output.WriteString(fmt.Sprintf("Pages processed: %d\n", result.PageCount))
			}
			if result.Confidence > 0 {
				output.WriteString(fmt.Sprintf("Confidence: %.1f%%\n", result.Confidence*100))
			}
			if len(result.LanguageCodes) > 0 {
				output.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(result.LanguageCodes, ", ")))
			}
			output.WriteString(fmt.Sprintf("Processing time: %v\n", result.ProcessingDuration))
			output.WriteString(fmt.Sprintf("Processed at: %s\n", result.ProcessedAt.Format(time.RFC3339)))
			output.WriteString("\n=== Extracted Text ===\n\n")
		}

		output.WriteString(result.Text)
		outputData = []byte(output.String())
	}

	return writeOutput(outputData, outputPath, log)
}
