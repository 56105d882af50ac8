package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/latex"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume.tex]",
	Short: "Parse a LaTeX resume into structured JSON",
	Long:  "Parse a LaTeX resume into its structured form: contact info, summary, experience sections with bullets, skills, and education.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var parseOutFile string

func init() {
	parseCmd.Flags().StringVarP(&parseOutFile, "out", "o", "", "Write JSON to this file instead of stdout")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	resume, err := latex.NewParser().ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	if parseOutFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(parseOutFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Parsed resume written to %s\n", parseOutFile)
	return nil
}
