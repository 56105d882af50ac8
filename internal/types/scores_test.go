package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{95, "A+"},
		{90, "A+"},
		{86, "A"},
		{80, "A-"},
		{78.5, "B+"},
		{72, "B"},
		{65, "B-"},
		{61, "C+"},
		{55, "C"},
		{54.9, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		s := ATSScore{Overall: tt.overall}
		assert.Equal(t, tt.want, s.Grade(), "overall=%v", tt.overall)
	}
}

func TestPassesScreening(t *testing.T) {
	assert.True(t, ATSScore{Overall: 65}.PassesScreening())
	assert.False(t, ATSScore{Overall: 64.9}.PassesScreening())
}

func TestMatchedCount(t *testing.T) {
	s := ATSScore{Matches: []KeywordMatch{
		{MatchType: MatchExact},
		{MatchType: MatchStemmed},
		{MatchType: MatchMissing},
	}}
	assert.Equal(t, 2, s.MatchedCount())
	assert.Equal(t, 0, ATSScore{}.MatchedCount())
}

func TestSectionScoreMatchRate(t *testing.T) {
	assert.InDelta(t, 0.5, SectionScore{KeywordsFound: 5, KeywordsTotal: 10}.MatchRate(), 0.001)
	assert.Zero(t, SectionScore{}.MatchRate())
}
