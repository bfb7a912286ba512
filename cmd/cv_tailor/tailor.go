package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/pipeline"
	"github.com/jonathan/cv-tailor/internal/strictness"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Run the full tailoring pipeline",
	Long:  "Extract the job posting and CV, map requirements to evidence, generate a tailored CV, run fabrication checks, and write the complete result as JSON.",
	RunE:  runTailor,
}

var (
	tailorJobFile     string
	tailorCVFile      string
	tailorOutput      string
	tailorStrictness  string
	tailorCoverLetter bool
	tailorAPIKey      string
	tailorConfigFile  string
	tailorVerbose     bool
)

func init() {
	tailorCmd.Flags().StringVar(&tailorJobFile, "job", "", "Path to job posting text file")
	tailorCmd.Flags().StringVar(&tailorCVFile, "cv", "", "Path to CV text file")
	tailorCmd.Flags().StringVarP(&tailorOutput, "out", "o", "", "Path to output JSON file (required)")
	tailorCmd.Flags().StringVar(&tailorStrictness, "strictness", "", "Strictness level: conservative, moderate, or aggressive (default moderate)")
	tailorCmd.Flags().BoolVar(&tailorCoverLetter, "cover-letter", false, "Also generate a cover letter")
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	tailorCmd.Flags().StringVar(&tailorConfigFile, "config", "", "Path to JSON config file")
	tailorCmd.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print detailed progress information")
	_ = tailorCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Job:         tailorJobFile,
		CV:          tailorCVFile,
		APIKey:      tailorAPIKey,
		Strictness:  tailorStrictness,
		CoverLetter: tailorCoverLetter,
		Verbose:     tailorVerbose,
	}

	if tailorConfigFile != "" {
		fileCfg, err := config.LoadConfig(tailorConfigFile)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.Strictness == "" {
		cfg.Strictness = "moderate"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Job == "" || cfg.CV == "" {
		return fmt.Errorf("both --job and --cv are required (via flags or config file)")
	}

	apiKey := resolveAPIKey(cfg.APIKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	level, err := strictness.Parse(cfg.Strictness)
	if err != nil {
		return err
	}

	jobText, err := os.ReadFile(cfg.Job)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	cvText, err := os.ReadFile(cfg.CV)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	llmConfig := llm.DefaultConfig()
	for tier, model := range cfg.Models {
		llmConfig = llmConfig.WithModel(llm.ModelTier(tier), model)
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, llmConfig, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := pipeline.Run(ctx, client, pipeline.RunOptions{
		JobDescription:       string(jobText),
		CVText:               string(cvText),
		Strictness:           level,
		CoverLetter:          cfg.CoverLetter,
		DiscoveryConcurrency: cfg.DiscoveryConcurrency,
		DiscoveryRateLimit:   cfg.DiscoveryRateLimit,
		Logger:               logger,
		OnProgress: func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Step, event.Message)
		},
	})
	if err != nil {
		return err
	}

	if err := writeJSON(tailorOutput, result); err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintMatchScore(result.MatchScore)
		printer.PrintChangeLog(result.ChangesLog)
		printer.PrintBorderlineItems(result.BorderlineItems)
	}

	fmt.Fprintf(os.Stdout, "\nFinal match score: %d\n", result.MatchScore.Score)
	fmt.Fprintf(os.Stdout, "%s\n", result.MatchScore.Explanation)
	if len(result.BorderlineItems) > 0 {
		fmt.Fprintf(os.Stdout, "%d borderline items require review\n", len(result.BorderlineItems))
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	fmt.Fprintf(os.Stdout, "Output: %s\n", tailorOutput)
	return nil
}
