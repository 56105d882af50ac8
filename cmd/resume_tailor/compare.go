package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/latex"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

var compareCmd = &cobra.Command{
	Use:   "compare [base.tex] [variant.tex]",
	Short: "Diff a generated variant against the base resume",
	Long:  "Compare two LaTeX resumes bullet by bullet and report what was added, removed, modified, or enhanced, plus the keywords the variant introduced.",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

var compareJSONOut string

func init() {
	compareCmd.Flags().StringVar(&compareJSONOut, "json", "", "Write the full diff to this JSON file")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	parser := latex.NewParser()
	base, err := parser.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse base resume: %w", err)
	}
	variant, err := parser.ParseFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to parse variant: %w", err)
	}

	comparison := tailoring.NewComparator().Compare(base, variant, nil)
	comparison.BasePath = args[0]
	comparison.VariantPath = args[1]

	fmt.Printf("Similarity:   %.0f%%\n", comparison.Similarity*100)
	fmt.Printf("Change score: %.1f\n", comparison.ChangeScore)
	fmt.Printf("Total changes: %d\n\n", comparison.TotalChanges())

	for _, section := range comparison.Sections {
		fmt.Printf("%s: +%d -%d ~%d (enhanced %d, unchanged %d)\n",
			section.Section, section.Added, section.Removed,
			section.Modified, section.Enhanced, section.Unchanged)
		for _, change := range section.Changes {
			if !change.IsSignificant() {
				continue
			}
			switch change.Type {
			case "added":
				fmt.Printf("  + %s\n", change.Modified)
			case "removed":
				fmt.Printf("  - %s\n", change.Original)
			default:
				fmt.Printf("  ~ %s\n    > %s\n", change.Original, change.Modified)
			}
		}
	}
	if len(comparison.NewKeywords) > 0 {
		fmt.Printf("\nNew keywords: %v\n", comparison.NewKeywords)
	}

	if compareJSONOut != "" {
		data, err := json.MarshalIndent(comparison, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal comparison: %w", err)
		}
		if err := os.WriteFile(compareJSONOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write comparison: %w", err)
		}
		fmt.Printf("Diff written to %s\n", compareJSONOut)
	}
	return nil
}
