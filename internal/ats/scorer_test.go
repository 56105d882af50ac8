package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func TestScore(t *testing.T) {
	resume := testResume()
	score := NewScorer().Score(resume, sampleJD, "Senior Kafka Platform Engineer", "Streamline Data")
	require.NotNil(t, score)

	t.Run("components in range", func(t *testing.T) {
		for name, v := range map[string]float64{
			"overall":    score.Overall,
			"keyword":    score.KeywordScore,
			"experience": score.ExperienceScore,
			"skills":     score.SkillsScore,
			"education":  score.EducationScore,
			"format":     score.FormatScore,
		} {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 100.0, name)
		}
	})

	t.Run("overall is the weighted combination", func(t *testing.T) {
		expected := score.KeywordScore*0.40 +
			score.ExperienceScore*0.20 +
			score.SkillsScore*0.20 +
			score.EducationScore*0.10 +
			score.FormatScore*0.10
		assert.InDelta(t, expected, score.Overall, 0.01)
	})

	t.Run("matches cover every keyword", func(t *testing.T) {
		assert.Equal(t, len(score.Matches), score.MatchedCount()+len(score.MissingKeywords))
	})

	t.Run("education rewards relevant degree", func(t *testing.T) {
		// Bachelor's in a relevant field: 50 base + 20 level + 20 field.
		assert.InDelta(t, 90, score.EducationScore, 1e-9)
	})

	t.Run("section scores present", func(t *testing.T) {
		require.Contains(t, score.SectionScores, "experience")
		require.Contains(t, score.SectionScores, "skills")
		assert.Positive(t, score.SectionScores["experience"].WordCount)
	})

	t.Run("missing cka surfaces as critical recommendation", func(t *testing.T) {
		found := false
		for _, rec := range score.Recommendations.Critical {
			if containsFold(rec, "cka") {
				found = true
			}
		}
		assert.True(t, found, "expected a critical recommendation about the missing certification")
	})
}

func TestScoreGradeBoundaries(t *testing.T) {
	tests := []struct {
		overall float64
		grade   string
		passes  bool
	}{
		{92, "A+", true},
		{85, "A", true},
		{80, "A-", true},
		{75, "B+", true},
		{70, "B", true},
		{65, "B-", true},
		{64.9, "C+", false},
		{55, "C", false},
		{54.9, "F", false},
	}

	for _, tt := range tests {
		s := types.ATSScore{Overall: tt.overall}
		assert.Equal(t, tt.grade, s.Grade(), "overall %.1f", tt.overall)
		assert.Equal(t, tt.passes, s.PassesScreening(), "overall %.1f", tt.overall)
	}
}

func TestScoreEmptyJobDescription(t *testing.T) {
	score := NewScorer().Score(testResume(), "", "", "")
	require.NotNil(t, score)

	assert.Zero(t, score.KeywordScore)
	assert.Empty(t, score.Matches)
	// Resume-only components still contribute.
	assert.Positive(t, score.FormatScore)
	assert.Positive(t, score.EducationScore)
}

func TestFormatScoreContactDetails(t *testing.T) {
	full := testResume()
	full.Personal.Phone = "555-123-4567"
	full.Personal.LinkedIn = "jordanreyes"
	full.Personal.GitHub = "jreyes"

	bare := testResume()
	bare.Personal = types.PersonalInfo{}

	assert.Greater(t, formatScore(full), formatScore(bare))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
