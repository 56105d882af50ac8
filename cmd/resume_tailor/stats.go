package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show job search statistics",
	Long:  "Summarize tracked jobs, generated variants, applications by status, and the average ATS score.",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
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

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	fmt.Printf("Jobs tracked:      %d\n", stats.TotalJobs)
	fmt.Printf("Variants:          %d\n", stats.TotalVariants)
	fmt.Printf("Applications:      %d\n", stats.TotalApplications)
	if stats.AverageOverallScore > 0 {
		fmt.Printf("Average ATS score: %.1f\n", stats.AverageOverallScore)
	}
	if len(stats.ApplicationsByStatus) > 0 {
		fmt.Println("\nApplications by status:")
		statuses := make([]string, 0, len(stats.ApplicationsByStatus))
		for s := range stats.ApplicationsByStatus {
			statuses = append(statuses, s)
		}
		sort.Strings(statuses)
		for _, s := range statuses {
			fmt.Printf("  %-14s %d\n", s, stats.ApplicationsByStatus[s])
		}
	}

	pipeline, err := store.JobPipeline(ctx)
	if err != nil {
		return fmt.Errorf("failed to load job pipeline: %w", err)
	}
	if len(pipeline) > 0 {
		fmt.Println("\nPipeline:")
		for _, row := range pipeline {
			best := "-"
			if row.BestScore != nil {
				best = fmt.Sprintf("%.1f", *row.BestScore)
			}
			fmt.Printf("  %-20s %-28s %d variants, %d applications, best %s\n",
				truncate(row.Company, 20), truncate(row.JobTitle, 28),
				row.VariantCount, row.ApplicationCount, best)
		}
	}
	return nil
}
