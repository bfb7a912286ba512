package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/mapping"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/strictness"
	"github.com/jonathan/cv-tailor/internal/types"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map extracted job requirements to CV evidence",
	Long:  "Map JobRequirements JSON to CandidateProfile JSON evidence, producing the mapping table, gap analysis, overall match, and keyword coverage. Runs fully offline unless an API key is provided for transferable-skill discovery.",
	RunE:  runMap,
}

var (
	mapJobFile     string
	mapCVFile      string
	mapOutput      string
	mapStrictness  string
	mapAPIKey      string
	mapConcurrency int
	mapRateLimit   float64
	mapVerbose     bool
)

func init() {
	mapCmd.Flags().StringVar(&mapJobFile, "job", "", "Path to JobRequirements JSON (required)")
	mapCmd.Flags().StringVar(&mapCVFile, "cv", "", "Path to CandidateProfile JSON (required)")
	mapCmd.Flags().StringVarP(&mapOutput, "out", "o", "", "Path to output JSON file (required)")
	mapCmd.Flags().StringVar(&mapStrictness, "strictness", "moderate", "Strictness level: conservative, moderate, or aggressive")
	mapCmd.Flags().StringVar(&mapAPIKey, "api-key", "", "Gemini API key; enables transferable-skill discovery when set")
	mapCmd.Flags().IntVar(&mapConcurrency, "concurrency", 0, "Concurrent discovery calls (0 = default)")
	mapCmd.Flags().Float64Var(&mapRateLimit, "rate-limit", 0, "Discovery requests per second (0 = unlimited)")
	mapCmd.Flags().BoolVarP(&mapVerbose, "verbose", "v", false, "Print formatted requirement and match summaries")
	_ = mapCmd.MarkFlagRequired("job")
	_ = mapCmd.MarkFlagRequired("cv")
	_ = mapCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(mapCmd)
}

func runMap(_ *cobra.Command, _ []string) error {
	level, err := strictness.Parse(mapStrictness)
	if err != nil {
		return err
	}

	var reqs types.JobRequirements
	if err := readJSON(mapJobFile, &reqs); err != nil {
		return err
	}

	var profile types.CandidateProfile
	if err := readJSON(mapCVFile, &profile); err != nil {
		return err
	}

	ctx := context.Background()
	mapper := &mapping.Mapper{Concurrency: mapConcurrency}

	// Discovery is optional: without an API key the mapper still produces
	// direct and experience evidence, just no transferable matches.
	apiKey := resolveAPIKey(mapAPIKey)
	if apiKey != "" {
		client, err := llm.NewGeminiClient(ctx, nil, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		mapper.Discovery = &mapping.LLMFinder{Client: client}
		if mapRateLimit > 0 {
			mapper.Limiter = rate.NewLimiter(rate.Limit(mapRateLimit), 1)
		}
	}

	result, err := mapper.Map(ctx, &reqs, &profile, level)
	if err != nil {
		return fmt.Errorf("mapping failed: %w", err)
	}

	if err := writeJSON(mapOutput, result); err != nil {
		return err
	}

	if mapVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintJobRequirements(&reqs)
		printer.PrintOverallMatch(result)
	}

	fmt.Fprintf(os.Stdout, "Match score: %d (must-have %s, nice-to-have %s)\n",
		result.OverallMatch.Score, result.OverallMatch.MustHaveCoverage, result.OverallMatch.NiceToHaveCoverage)
	if len(result.OverallMatch.CriticalGaps) > 0 {
		fmt.Fprintf(os.Stdout, "Critical gaps: %d\n", len(result.OverallMatch.CriticalGaps))
	}
	fmt.Fprintf(os.Stdout, "Output: %s\n", mapOutput)
	return nil
}

// readJSON reads path and unmarshals it into v
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
