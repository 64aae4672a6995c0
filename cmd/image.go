package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docanalyzer/internal/logger"
	"docanalyzer/internal/vision"
)

var imageCmd = &cobra.Command{
	Use:   "image [image-file]",
	Short: "Analyze image content using Google Cloud Vision",
	Long: `Analyze an image with Google Cloud Vision API and report detected labels,
localized objects, dominant colors and text.

The --type flag selects which annotation features to request:
  full        labels, objects, colors and text (default)
  labels      label detection only
  objects     object localization only
  text        text detection only
  properties  dominant colors only

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Full analysis
  docanalyzer image photo.jpg

  # Labels only, as JSON
  docanalyzer image photo.jpg --type labels --json

  # Save full analysis to a file
  docanalyzer image photo.jpg --json -o analysis.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().String("type", "full", "Analysis type: full, labels, objects, text, properties")
	imageCmd.Flags().Bool("json", false, "Output as JSON")
	imageCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	imageCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runImage(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("image")

	analysisType, _ := cmd.Flags().GetString("type")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	kind := vision.AnalysisKind(strings.ToLower(analysisType))
	if !kind.Valid() {
		return fmt.Errorf("unknown analysis type %q (expected full, labels, objects, text or properties)", analysisType)
	}

	imagePath := args[0]

	log.Info().
		Str("file", imagePath).
		Str("type", string(kind)).
		Msg("Starting image analysis")

	if _, err := validateInputFile(imagePath, log); err != nil {
		return err
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
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

	analysis, err := proc.AnalyzeImage(ctx, imageBytes, kind)
	if err != nil {
		return handleVisionError(err, log)
	}

	log.Info().
		Int("labels", len(analysis.Labels)).
		Int("objects", len(analysis.Objects)).
		Int("colors", len(analysis.Properties.DominantColors)).
		Msg("Image analysis completed")

	var outputData []byte
	if jsonOutput {
		outputData, err = json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
	} else {
		outputData = []byte(formatAnalysis(analysis))
	}

	return writeOutput(outputData, outputPath, log)
}

// formatAnalysis renders an analysis as human-readable text.
func formatAnalysis(a *vision.Analysis) string {
	var b strings.Builder

	if len(a.Labels) > 0 {
		b.WriteString("Labels:\n")
		for _, label := range a.Labels {
			fmt.Fprintf(&b, "  %-30s %.1f%%\n", label.Description, label.Score*100)
		}
	}

	if len(a.Objects) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Objects:\n")
		for _, obj := range a.Objects {
			fmt.Fprintf(&b, "  %-30s %.1f%%\n", obj.Name, obj.Score*100)
		}
	}

	if len(a.Properties.DominantColors) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Dominant colors:\n")
		for _, c := range a.Properties.DominantColors {
			fmt.Fprintf(&b, "  %-20s score %.2f, %.1f%% of pixels\n", c.Color, c.Score, c.PixelFraction*100)
		}
	}

	if a.Text != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Text:\n")
		b.WriteString(a.Text)
	}

	if b.Len() == 0 {
		b.WriteString("No annotations detected.\n")
	}

	return b.String()
}
