// Package pipeline provides the high-level orchestration for a tailoring run:
// extract job and CV in parallel, map requirements to evidence, generate the
// tailored document, then gate everything behind the quality checks.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/generation"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/mapping"
	"github.com/jonathan/cv-tailor/internal/qa"
	"github.com/jonathan/cv-tailor/internal/strictness"
	"github.com/jonathan/cv-tailor/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Pipeline step names emitted in progress events
const (
	StepExtractJob = "extract_job"
	StepExtractCV  = "extract_cv"
	StepMapping    = "mapping"
	StepGeneration = "generation"
	StepQA         = "qa"
	StepCoverLett  = "cover_letter"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	JobDescription string
	CVText         string
	Strictness     strictness.Level
	CoverLetter    bool

	// DiscoveryConcurrency caps concurrent transferable-skill lookups;
	// zero means the mapper default.
	DiscoveryConcurrency int
	// DiscoveryRateLimit is requests per second for discovery calls;
	// zero means unlimited.
	DiscoveryRateLimit float64

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Run executes the full tailoring pipeline against one job posting and CV
func Run(ctx context.Context, client llm.Client, opts RunOptions) (*types.TailorResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	jobExtractor := &extraction.JobExtractor{Client: client}
	profileExtractor := &extraction.ProfileExtractor{Client: client}

	var reqs *types.JobRequirements
	var profile *types.CandidateProfile

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reqs, err = jobExtractor.ExtractJobRequirements(gCtx, opts.JobDescription)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = profileExtractor.ExtractCandidateProfile(gCtx, opts.CVText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	logger.Info("extraction complete",
		zap.String("job_title", reqs.JobTitle),
		zap.Int("must_have", len(reqs.MustHave)),
		zap.Int("nice_to_have", len(reqs.NiceToHave)),
		zap.Int("experience_entries", len(profile.Experience)))
	emit(opts, StepExtractJob, fmt.Sprintf("Extracted %d requirements for %s", len(reqs.MustHave)+len(reqs.NiceToHave), reqs.JobTitle), nil)
	emit(opts, StepExtractCV, fmt.Sprintf("Extracted profile for %s", profile.PersonalInfo.Name), nil)

	mapper := &mapping.Mapper{
		Discovery:   &mapping.LLMFinder{Client: client},
		Concurrency: opts.DiscoveryConcurrency,
	}
	if opts.DiscoveryRateLimit > 0 {
		mapper.Limiter = rate.NewLimiter(rate.Limit(opts.DiscoveryRateLimit), 1)
	}

	result, err := mapper.Map(ctx, reqs, profile, opts.Strictness)
	if err != nil {
		return nil, fmt.Errorf("mapping failed: %w", err)
	}

	logger.Info("mapping complete",
		zap.Int("score", result.OverallMatch.Score),
		zap.String("must_have_coverage", result.OverallMatch.MustHaveCoverage),
		zap.Int("critical_gaps", len(result.OverallMatch.CriticalGaps)))
	emit(opts, StepMapping, fmt.Sprintf("Match score %d (%s must-have coverage)", result.OverallMatch.Score, result.OverallMatch.MustHaveCoverage), result.OverallMatch)

	generator := generation.NewGenerator(client, reqs, profile, result, opts.Strictness)
	cv, changes, borderline, err := generator.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	logger.Info("generation complete",
		zap.Int("changes", len(changes)),
		zap.Int("borderline", len(borderline)))
	emit(opts, StepGeneration, fmt.Sprintf("Generated tailored CV with %d logged changes", len(changes)), nil)

	report := qa.RunQualityChecks(profile, cv, result, changes, borderline)
	if !report.Valid {
		logger.Error("quality checks failed", zap.Strings("violations", report.Errors))
		return nil, &qa.FabricationError{Violations: report.Errors}
	}

	logger.Info("quality checks passed",
		zap.Int("score", report.MatchScore.Score),
		zap.Int("warnings", len(report.Warnings)))
	emit(opts, StepQA, fmt.Sprintf("Quality checks passed, final score %d", report.MatchScore.Score), report.MatchScore)

	tailorResult := &types.TailorResult{
		TailoredCV:      cv,
		ChangesLog:      changes,
		BorderlineItems: report.Borderline,
		MatchScore:      report.MatchScore,
		Warnings:        report.Warnings,
		MappingSummary:  summarize(result),
	}

	if opts.CoverLetter {
		letter, err := generation.GenerateCoverLetter(ctx, client, reqs, profile, result)
		if err != nil {
			// A missing cover letter should not sink an otherwise valid run
			logger.Warn("cover letter generation failed", zap.Error(err))
			tailorResult.Warnings = append(tailorResult.Warnings, "COVER_LETTER_FAILED: "+err.Error())
		} else {
			tailorResult.CoverLetter = letter
			emit(opts, StepCoverLett, "Generated cover letter", nil)
		}
	}

	return tailorResult, nil
}

func summarize(result *types.MappingResult) *types.MappingSummary {
	return &types.MappingSummary{
		OverallScore:       result.OverallMatch.Score,
		MustHaveCoverage:   result.OverallMatch.MustHaveCoverage,
		NiceToHaveCoverage: result.OverallMatch.NiceToHaveCoverage,
		StrongestMatches:   result.OverallMatch.StrongestMatches,
		CriticalGaps:       result.OverallMatch.CriticalGaps,
		KeywordsPresent:    result.KeywordCoverage.PresentInCV,
		KeywordsMissing:    result.KeywordCoverage.GenuinelyMissing,
	}
}

func emit(opts RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
