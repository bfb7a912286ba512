package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/qa"
	"github.com/jonathan/cv-tailor/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a tailored CV against the original profile for fabrication",
	Long:  "Run the provenance checks (companies, skills, metrics, titles) on a tailored CV JSON against the original CandidateProfile JSON. Exits non-zero when fabrication is detected.",
	RunE:  runValidate,
}

var (
	validateOriginal string
	validateTailored string
)

func init() {
	validateCmd.Flags().StringVar(&validateOriginal, "original", "", "Path to original CandidateProfile JSON (required)")
	validateCmd.Flags().StringVar(&validateTailored, "tailored", "", "Path to TailoredCV JSON (required)")
	_ = validateCmd.MarkFlagRequired("original")
	_ = validateCmd.MarkFlagRequired("tailored")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	var profile types.CandidateProfile
	if err := readJSON(validateOriginal, &profile); err != nil {
		return err
	}

	var tailored types.TailoredCV
	if err := readJSON(validateTailored, &tailored); err != nil {
		return err
	}

	validator := qa.NewValidator(&profile, &tailored)
	valid, errors, warnings := validator.ValidateAll()

	observability.NewPrinter(os.Stdout).PrintViolations(errors, warnings)

	if !valid {
		return fmt.Errorf("validation failed with %d violation(s)", len(errors))
	}
	return nil
}
