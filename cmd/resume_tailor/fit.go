package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/ats"
	"github.com/jonathan/resume-tailor/internal/fit"
	"github.com/jonathan/resume-tailor/internal/latex"
	"github.com/jonathan/resume-tailor/internal/observability"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Analyze how well a candidate fits a job posting",
	Long:  "Evaluate skills, experience, education, and culture indicators from a LaTeX resume against a job posting and report a hire-likelihood fit score with gap analysis.",
	RunE:  runFit,
}

var (
	fitResume  string
	fitJDFile  string
	fitJSONOut string
)

func init() {
	fitCmd.Flags().StringVarP(&fitResume, "resume", "r", "", "Path to the LaTeX resume (falls back to config)")
	fitCmd.Flags().StringVar(&fitJDFile, "jd", "", "Path to the job description text file (required)")
	fitCmd.Flags().StringVar(&fitJSONOut, "json", "", "Write the fit score to this JSON file")

	_ = fitCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(fitCmd)
}

func runFit(_ *cobra.Command, _ []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}
	if fitResume == "" {
		fitResume = cfg.BaseResume
	}
	if fitResume == "" {
		return fmt.Errorf("no resume given: use --resume or set base_resume in the config file")
	}

	jdText, err := os.ReadFile(fitJDFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	resume, err := latex.NewParser().ParseFile(fitResume)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	posting := ats.ParseJobDescription(string(jdText))
	keywords := ats.NewExtractor(ats.DefaultTopKeywords).Extract(string(jdText))
	req := fit.RequirementsFromPosting(posting, keywords)
	score := fit.NewScorer().Score(resume, req, string(jdText))

	observability.NewPrinter(os.Stdout).PrintFitScore(score)

	if fitJSONOut != "" {
		data, err := json.MarshalIndent(score, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal fit score: %w", err)
		}
		if err := os.WriteFile(fitJSONOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write fit score: %w", err)
		}
		fmt.Printf("Fit score written to %s\n", fitJSONOut)
	}
	return nil
}
