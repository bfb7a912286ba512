package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/llm"
)

var extractCVCmd = &cobra.Command{
	Use:   "extract-cv",
	Short: "Extract a structured candidate profile from CV text",
	Long:  "Extract a CV text file into structured CandidateProfile JSON that validates against the candidate_profile schema. Only stated facts are extracted; nothing is embellished.",
	RunE:  runExtractCV,
}

var (
	extractCVInput  string
	extractCVOutput string
	extractCVAPIKey string
)

func init() {
	extractCVCmd.Flags().StringVarP(&extractCVInput, "in", "i", "", "Path to CV text file (required)")
	extractCVCmd.Flags().StringVarP(&extractCVOutput, "out", "o", "", "Path to output JSON file (required)")
	extractCVCmd.Flags().StringVar(&extractCVAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = extractCVCmd.MarkFlagRequired("in")
	_ = extractCVCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(extractCVCmd)
}

func runExtractCV(_ *cobra.Command, _ []string) error {
	apiKey := resolveAPIKey(extractCVAPIKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	cvText, err := os.ReadFile(extractCVInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	extractor := &extraction.ProfileExtractor{Client: client}
	profile, err := extractor.ExtractCandidateProfile(ctx, string(cvText))
	if err != nil {
		return fmt.Errorf("failed to extract candidate profile: %w", err)
	}

	if err := writeJSON(extractCVOutput, profile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Extracted profile for %s (%d experience entries)\n", profile.PersonalInfo.Name, len(profile.Experience))
	fmt.Fprintf(os.Stdout, "Output: %s\n", extractCVOutput)
	return nil
}
