package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/ats"
	"github.com/jonathan/resume-tailor/internal/fit"
	"github.com/jonathan/resume-tailor/internal/latex"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long:  "Compute the ATS compatibility score for a LaTeX resume against a job description, and optionally the candidate-side job fit analysis.",
	RunE:  runScore,
}

var (
	scoreResume  string
	scoreJDFile  string
	scoreTitle   string
	scoreCompany string
	scoreWithFit bool
	scoreJSONOut string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to the LaTeX resume (falls back to config)")
	scoreCmd.Flags().StringVar(&scoreJDFile, "jd", "", "Path to the job description text file (required)")
	scoreCmd.Flags().StringVarP(&scoreTitle, "title", "t", "", "Job title (overrides the one detected in the posting)")
	scoreCmd.Flags().StringVarP(&scoreCompany, "company", "c", "", "Company name")
	scoreCmd.Flags().BoolVar(&scoreWithFit, "fit", false, "Also run the job fit analysis")
	scoreCmd.Flags().StringVar(&scoreJSONOut, "json", "", "Write the full result to this JSON file")

	_ = scoreCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}
	if scoreResume == "" {
		scoreResume = cfg.BaseResume
	}
	if scoreResume == "" {
		return fmt.Errorf("no resume given: use --resume or set base_resume in the config file")
	}

	jdText, err := os.ReadFile(scoreJDFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	resume, err := latex.NewParser().ParseFile(scoreResume)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	posting := ats.ParseJobDescription(string(jdText))
	if scoreTitle != "" {
		posting.Title = scoreTitle
	}
	keywords := ats.NewExtractor(ats.DefaultTopKeywords).Extract(string(jdText))

	// ATS scoring and fit analysis read the same parsed structures but are
	// otherwise independent.
	var (
		atsScore *types.ATSScore
		fitScore *types.JobFitScore
	)
	var g errgroup.Group
	g.Go(func() error {
		atsScore = ats.NewScorer().ScoreAgainst(resume, keywords, posting, scoreCompany)
		return nil
	})
	if scoreWithFit {
		g.Go(func() error {
			req := fit.RequirementsFromPosting(posting, keywords)
			fitScore = fit.NewScorer().Score(resume, req, string(jdText))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintKeywords(keywords)
	printer.PrintATSScore(atsScore)
	printer.PrintRecommendations(atsScore.Recommendations)
	if fitScore != nil {
		printer.PrintFitScore(fitScore)
	}

	if scoreJSONOut != "" {
		result := map[string]any{"ats_score": atsScore}
		if fitScore != nil {
			result["fit_score"] = fitScore
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		if err := os.WriteFile(scoreJSONOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		fmt.Printf("Result written to %s\n", scoreJSONOut)
	}
	return nil
}
