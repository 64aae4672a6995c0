package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docanalyzer/internal/ai"
	"docanalyzer/internal/logger"
)

var captionCmd = &cobra.Command{
	Use:   "caption [image-file]",
	Short: "Generate a descriptive caption for an image using Gemini",
	Long: `Generate a detailed caption for an image using the Gemini generative
model. A custom prompt can replace the default captioning instruction.

Required environment variables:
  GEMINI_API_KEY - Gemini API key`,
	Example: `  # Caption an image
  docanalyzer caption photo.jpg

  # Caption with a custom instruction
  docanalyzer caption diagram.png --prompt "Explain what this diagram shows"`,
	Args: cobra.ExactArgs(1),
	RunE: runCaption,
}

func init() {
	rootCmd.AddCommand(captionCmd)

	captionCmd.Flags().String("prompt", "", "Custom captioning prompt")
	captionCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runCaption(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("caption")

	prompt, _ := cmd.Flags().GetString("prompt")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	imagePath := args[0]

	if _, err := validateInputFile(imagePath, log); err != nil {
		return err
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if err := cfg.RequireGemini(); err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GenerativeModel, cfg.Temperature, cfg.MaxOutputTokens)
	if err != nil {
		return err
	}
	defer gemini.Close()

	caption, err := gemini.Caption(ctx, imageBytes, prompt)
	if err != nil {
		return fmt.Errorf("caption generation failed: %w", err)
	}

	log.Info().
		Str("file", imagePath).
		Int("caption_length", len(caption)).
		Msg("Caption generated")

	fmt.Println(caption)
	return nil
}
