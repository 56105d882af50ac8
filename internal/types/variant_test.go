package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputStem(t *testing.T) {
	v := Variant{
		ID:       "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809",
		JobTitle: "Platform Engineer",
		Company:  "Acme Corp.",
	}
	assert.Equal(t, "resume_Acme_Corp_platform_engineer_1a2b3c4d", v.OutputStem())

	// Missing fields collapse rather than leaving empty segments.
	assert.Equal(t, "resume_1a2b3c4d", Variant{ID: "1a2b3c4d"}.OutputStem())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "1a2b3c4d", Variant{ID: "1a2b3c4d-5e6f"}.ShortID())
	assert.Equal(t, "abc", Variant{ID: "abc"}.ShortID())
}

func TestSelectedCount(t *testing.T) {
	v := Variant{Sections: []ExperienceSection{
		{Bullets: make([]SelectedBullet, 3)},
		{Bullets: make([]SelectedBullet, 2)},
	}}
	assert.Equal(t, 5, v.SelectedCount())
}

func TestFinalText(t *testing.T) {
	b := SelectedBullet{Bullet: Bullet{Text: "original"}}
	assert.Equal(t, "original", b.FinalText())

	b.Enhanced = true
	assert.Equal(t, "original", b.FinalText(), "enhanced without text falls back")

	b.EnhancedText = "rewritten"
	assert.Equal(t, "rewritten", b.FinalText())
}

func TestTaskStatusTerminal(t *testing.T) {
	assert.False(t, TaskPending.Terminal())
	assert.False(t, TaskRunning.Terminal())
	assert.True(t, TaskCompleted.Terminal())
	assert.True(t, TaskFailed.Terminal())
}

func TestComparisonTotals(t *testing.T) {
	c := Comparison{Sections: []SectionChange{
		{Added: 1, Removed: 2, Modified: 1, Enhanced: 1, Unchanged: 10},
		{Modified: 1, Unchanged: 5},
	}}
	assert.Equal(t, 6, c.TotalChanges())
	assert.False(t, Comparison{ChangeScore: 10}.HasSignificantChanges())
	assert.True(t, Comparison{ChangeScore: 10.1}.HasSignificantChanges())
}
