package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/llm"
)

var extractJobCmd = &cobra.Command{
	Use:   "extract-job",
	Short: "Extract structured requirements from a job posting",
	Long:  "Extract a job posting text file into structured JobRequirements JSON that validates against the job_requirements schema.",
	RunE:  runExtractJob,
}

var (
	extractJobInput  string
	extractJobOutput string
	extractJobAPIKey string
)

func init() {
	extractJobCmd.Flags().StringVarP(&extractJobInput, "in", "i", "", "Path to job posting text file (required)")
	extractJobCmd.Flags().StringVarP(&extractJobOutput, "out", "o", "", "Path to output JSON file (required)")
	extractJobCmd.Flags().StringVar(&extractJobAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = extractJobCmd.MarkFlagRequired("in")
	_ = extractJobCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(extractJobCmd)
}

func runExtractJob(_ *cobra.Command, _ []string) error {
	apiKey := resolveAPIKey(extractJobAPIKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	jobText, err := os.ReadFile(extractJobInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	extractor := &extraction.JobExtractor{Client: client}
	reqs, err := extractor.ExtractJobRequirements(ctx, string(jobText))
	if err != nil {
		return fmt.Errorf("failed to extract job requirements: %w", err)
	}

	if err := writeJSON(extractJobOutput, reqs); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Extracted %d must-have and %d nice-to-have requirements\n", len(reqs.MustHave), len(reqs.NiceToHave))
	fmt.Fprintf(os.Stdout, "Output: %s\n", extractJobOutput)
	return nil
}

// resolveAPIKey prefers the flag value over the environment
func resolveAPIKey(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("GEMINI_API_KEY")
}

// writeJSON marshals v with indentation and writes it to path
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
