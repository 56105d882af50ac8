package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/types"
)

func TestPrintATSScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintATSScore(&types.ATSScore{
		Overall:         78.5,
		KeywordScore:    80,
		ExperienceScore: 70,
		SkillsScore:     75,
		FormatScore:     90,
		MissingKeywords: []types.Keyword{{Text: "grafana"}},
	})
	output := buf.String()

	assert.Contains(t, output, "ATS SCORE")
	assert.Contains(t, output, "78.5 (B+)")
	assert.Contains(t, output, "Likely to pass automated screening")
	assert.Contains(t, output, "grafana")
}

func TestPrintFitScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFitScore(&types.JobFitScore{
		Overall:       62,
		SkillsFit:     55,
		ExperienceFit: 70,
		Gaps: []types.SkillGap{
			{Skill: types.RequiredSkill{Name: "kubernetes", Required: true}, Severity: "critical", LearnEstimate: "3-6 months"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB FIT")
	assert.Contains(t, output, "moderate")
	assert.Contains(t, output, "kubernetes")
	assert.Contains(t, output, "3-6 months")
}

func TestPrintVariantAndKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVariant(&types.Variant{
		ID:              "1a2b3c4d-ffff",
		JobTitle:        "Platform Engineer",
		Company:         "Acme",
		TotalBullets:    17,
		BulletsEnhanced: 3,
		LatexPath:       "/out/resume.tex",
	})
	p.PrintKeywords([]types.Keyword{
		{Text: "kafka", Category: types.CategoryTechnical, Importance: 1.0},
	})
	output := buf.String()

	assert.Contains(t, output, "GENERATED VARIANT")
	assert.Contains(t, output, "1a2b3c4d")
	assert.Contains(t, output, "17 selected, 3 enhanced")
	assert.Contains(t, output, "EXTRACTED KEYWORDS")
	assert.Contains(t, output, "kafka")
}

func TestPrintersIgnoreEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintATSScore(nil)
	p.PrintFitScore(nil)
	p.PrintVariant(nil)
	p.PrintKeywords(nil)
	p.PrintRecommendations(types.Recommendations{})

	assert.Empty(t, buf.String())
}
