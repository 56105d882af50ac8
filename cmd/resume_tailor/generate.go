package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume variant for a job posting",
	Long:  "Run the full pipeline: parse the base resume, extract keywords from the job description, select and enhance bullets, render and compile the variant, then score it.",
	RunE:  runGenerate,
}

var (
	genResume        string
	genTitle         string
	genCompany       string
	genJDFile        string
	genJobURL        string
	genOutputDir     string
	genTargetBullets int
	genNoAI          bool
	genNoDB          bool
)

func init() {
	generateCmd.Flags().StringVarP(&genResume, "resume", "r", "", "Path to the base LaTeX resume (falls back to config)")
	generateCmd.Flags().StringVarP(&genTitle, "title", "t", "", "Job title (required)")
	generateCmd.Flags().StringVarP(&genCompany, "company", "c", "", "Company name (required)")
	generateCmd.Flags().StringVar(&genJDFile, "jd", "", "Path to the job description text file (required)")
	generateCmd.Flags().StringVar(&genJobURL, "url", "", "Job posting URL, stored with the variant")
	generateCmd.Flags().StringVarP(&genOutputDir, "output", "o", "", "Output directory (falls back to config)")
	generateCmd.Flags().IntVar(&genTargetBullets, "target-bullets", 0, "Total bullets to keep (falls back to config)")
	generateCmd.Flags().BoolVar(&genNoAI, "no-ai", false, "Skip AI enhancement even when the model server is up")
	generateCmd.Flags().BoolVar(&genNoDB, "no-db", false, "Do not record the job and variant in the database")

	_ = generateCmd.MarkFlagRequired("title")
	_ = generateCmd.MarkFlagRequired("company")
	_ = generateCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}
	if genResume != "" {
		cfg.BaseResume = genResume
	}
	if cfg.BaseResume == "" {
		return fmt.Errorf("no resume given: use --resume or set base_resume in the config file")
	}
	if genOutputDir != "" {
		cfg.OutputDir = genOutputDir
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	jdText, err := os.ReadFile(genJDFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	genCfg := cfg.Generation
	if genTargetBullets > 0 {
		genCfg.TargetBullets = genTargetBullets
	}
	if genNoAI {
		genCfg.UseAIEnhancement = false
	}

	log := observability.NewLogger(cfg.Verbose)
	ctx := context.Background()

	var store *db.DB
	if !genNoDB {
		store, err = db.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()
	}

	client := llm.NewOllamaClient(modelConfig(cfg))
	generator := pipeline.NewGenerator(store, client, log)

	opts := pipeline.Options{
		BaseResumePath: cfg.BaseResume,
		JobTitle:       genTitle,
		Company:        genCompany,
		JobDescription: string(jdText),
		JDFilePath:     genJDFile,
		JobURL:         genJobURL,
		OutputDir:      cfg.OutputDir,
		Config:         genCfg,
		OnProgress: func(percent int, message string) {
			fmt.Printf("  [%3d%%] %s\n", percent, message)
		},
	}

	variant, err := generator.Generate(ctx, opts)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintVariant(variant)
	if variant.ATS != nil {
		printer.PrintATSScore(variant.ATS)
		printer.PrintRecommendations(variant.ATS.Recommendations)
	}
	return nil
}
