package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docanalyzer/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "docanalyzer",
	Short: "Document and image analysis CLI backed by Google Cloud AI services",
	Long: `docanalyzer analyzes PDF documents and images using Google Cloud services.

It extracts text from PDFs, chunks and indexes it for retrieval-augmented
question answering and summarization with Gemini, runs OCR and multi-feature
annotation on images with Google Cloud Vision, and generates image captions.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("docanalyzer executed")

		fmt.Println("Welcome to docanalyzer!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
