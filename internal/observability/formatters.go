package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeywords outputs the top extracted keywords with their categories.
func (p *Printer) PrintKeywords(keywords []types.Keyword) {
	if len(keywords) == 0 {
		return
	}

	var sb strings.Builder
	shown := keywords
	if len(shown) > maxItemsToShow*2 {
		shown = shown[:maxItemsToShow*2]
	}
	for _, kw := range shown {
		sb.WriteString(fmt.Sprintf("%-24s %-14s %.2f\n", kw.Text, kw.Category, kw.Importance))
	}
	if len(keywords) > len(shown) {
		sb.WriteString(fmt.Sprintf("... and %d more", len(keywords)-len(shown)))
	}

	p.printBox("EXTRACTED KEYWORDS", strings.TrimRight(sb.String(), "\n"))
}

// PrintATSScore outputs a human-readable summary of an ATS evaluation.
func (p *Printer) PrintATSScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %.1f (%s)\n", score.Overall, score.Grade()))
	sb.WriteString(fmt.Sprintf("Keywords:   %.1f\n", score.KeywordScore))
	sb.WriteString(fmt.Sprintf("Experience: %.1f\n", score.ExperienceScore))
	sb.WriteString(fmt.Sprintf("Skills:     %.1f\n", score.SkillsScore))
	sb.WriteString(fmt.Sprintf("Format:     %.1f\n", score.FormatScore))
	sb.WriteString("\n")
	if score.PassesScreening() {
		sb.WriteString("Likely to pass automated screening\n")
	} else {
		sb.WriteString("At risk of automated rejection\n")
	}

	if len(score.MissingKeywords) > 0 {
		sb.WriteString("\nMissing keywords:\n")
		missing := score.MissingKeywords
		if len(missing) > maxItemsToShow {
			missing = missing[:maxItemsToShow]
		}
		for _, kw := range missing {
			sb.WriteString(fmt.Sprintf("  - %s\n", kw.Text))
		}
	}

	p.printBox("ATS SCORE", strings.TrimRight(sb.String(), "\n"))
}

// PrintRecommendations outputs prioritized improvement advice.
func (p *Printer) PrintRecommendations(recs types.Recommendations) {
	var sb strings.Builder
	writeGroup := func(header string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(header + "\n")
		if len(items) > maxItemsToShow {
			items = items[:maxItemsToShow]
		}
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("  - %s\n", item))
		}
	}
	writeGroup("Critical:", recs.Critical)
	writeGroup("Improvements:", recs.Improvements)
	writeGroup("Enhancements:", recs.Enhancements)

	if sb.Len() == 0 {
		return
	}
	p.printBox("RECOMMENDATIONS", strings.TrimRight(sb.String(), "\n"))
}

// PrintFitScore outputs a human-readable summary of a job fit analysis.
func (p *Printer) PrintFitScore(fit *types.JobFitScore) {
	if fit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %.1f (%s)\n", fit.Overall, fit.FitLevel()))
	sb.WriteString(fmt.Sprintf("Skills:     %.1f\n", fit.SkillsFit))
	sb.WriteString(fmt.Sprintf("Experience: %.1f\n", fit.ExperienceFit))
	sb.WriteString(fmt.Sprintf("Trajectory: %.1f\n", fit.TrajectoryFit))
	sb.WriteString("\n")
	sb.WriteString(fit.HireRecommendation())

	gaps := fit.CriticalGaps()
	if len(gaps) > 0 {
		sb.WriteString("\n\nCritical gaps:\n")
		if len(gaps) > maxItemsToShow {
			gaps = gaps[:maxItemsToShow]
		}
		for _, g := range gaps {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", g.Skill.Name, g.LearnEstimate))
		}
	}

	p.printBox("JOB FIT", strings.TrimRight(sb.String(), "\n"))
}

// PrintVariant outputs a summary of a generated variant.
func (p *Printer) PrintVariant(v *types.Variant) {
	if v == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Variant:  %s\n", v.ShortID()))
	sb.WriteString(fmt.Sprintf("Role:     %s at %s\n", v.JobTitle, v.Company))
	sb.WriteString(fmt.Sprintf("Bullets:  %d selected, %d enhanced\n", v.TotalBullets, v.BulletsEnhanced))
	if v.LatexPath != "" {
		sb.WriteString(fmt.Sprintf("LaTeX:    %s\n", v.LatexPath))
	}
	if v.PDFPath != "" {
		sb.WriteString(fmt.Sprintf("PDF:      %s\n", v.PDFPath))
	}
	if v.ATS != nil {
		sb.WriteString(fmt.Sprintf("ATS:      %.1f (%s)\n", v.ATS.Overall, v.ATS.Grade()))
	}

	p.printBox("GENERATED VARIANT", strings.TrimRight(sb.String(), "\n"))
}
