package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/db"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List generated resume variants",
	Long:  "List all recorded resume variants with their job, score, and output paths.",
	RunE:  runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(_ *cobra.Command, _ []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	variants, err := store.ListVariants(ctx)
	if err != nil {
		return fmt.Errorf("failed to list variants: %w", err)
	}
	if len(variants) == 0 {
		fmt.Println("No variants recorded yet. Run 'resume_tailor generate' first.")
		return nil
	}

	fmt.Printf("%-10s %-20s %-28s %-7s %s\n", "ID", "COMPANY", "TITLE", "SCORE", "CREATED")
	for _, v := range variants {
		score := "-"
		if v.Score != nil {
			score = fmt.Sprintf("%.1f", *v.Score)
		}
		fmt.Printf("%-10s %-20s %-28s %-7s %s\n",
			v.VariantID, truncate(v.Company, 20), truncate(v.JobTitle, 28),
			score, v.GeneratedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
