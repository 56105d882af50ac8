package tailoring

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

type fakeClient struct {
	reply     string
	err       error
	available bool
	calls     int
}

func (f *fakeClient) Generate(_ context.Context, _, _ string, _ llm.Options) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) IsAvailable(context.Context) bool { return f.available }

func (f *fakeClient) Model() string { return "fake-model" }

func TestEnhanceBullet(t *testing.T) {
	client := &fakeClient{reply: "Managed Kafka clusters powering real-time streaming pipelines"}
	e := NewEnhancer(client, zerolog.Nop())

	enh, err := e.EnhanceBullet(context.Background(),
		"Managed Kafka clusters for streaming pipelines",
		"Platform Engineer",
		[]string{"real-time", "grafana"})
	require.NoError(t, err)

	assert.InDelta(t, 0.9, enh.Confidence, 0.001)
	assert.Equal(t, []string{"real-time"}, enh.KeywordsAdd)
	assert.Greater(t, enh.Improvement, 0.0)
}

func TestGradeRewrite(t *testing.T) {
	tests := []struct {
		name     string
		original string
		enhanced string
		expected float64
	}{
		{
			name:     "length blowup",
			original: "Managed Kafka clusters",
			enhanced: "Managed Kafka clusters while also single-handedly rebuilding the entire platform from scratch",
			expected: 0.5,
		},
		{
			name:     "low overlap",
			original: "Managed Kafka clusters daily basis",
			enhanced: "Totally different words about nothing",
			expected: 0.6,
		},
		{
			name:     "lowercase start",
			original: "Managed Kafka clusters daily basis",
			enhanced: "managed kafka clusters daily basis",
			expected: 0.7,
		},
		{
			name:     "faithful rewrite",
			original: "Managed Kafka clusters for streaming pipelines",
			enhanced: "Managed Kafka clusters powering streaming pipelines at scale",
			expected: 0.9,
		},
		{
			// Three words to six sits exactly on the doubling limit.
			name:     "exactly double words passes",
			original: "Managed Kafka clusters",
			enhanced: "Managed Kafka clusters powering streaming pipelines",
			expected: 0.9,
		},
		{
			// Longer words do not count against the rewrite, only more words do.
			name:     "longer words few additions",
			original: "Led the Kafka ops team",
			enhanced: "Led the Kafka operations team organization-wide successfully",
			expected: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, gradeRewrite(tt.original, tt.enhanced), 0.001)
		})
	}
}

func TestEstimateImprovement(t *testing.T) {
	t.Run("padding without keywords earns nothing", func(t *testing.T) {
		score := estimateImprovement("documentation was thoroughly and extensively rewritten", nil)
		assert.Zero(t, score)
	})

	t.Run("each keyword worked in counts", func(t *testing.T) {
		score := estimateImprovement("Managed Kafka clusters with Grafana dashboards", []string{"grafana"})
		// One keyword plus the strong opening verb.
		assert.InDelta(t, 0.35, score, 0.001)
	})

	t.Run("keyword credit is capped", func(t *testing.T) {
		score := estimateImprovement("plain words", []string{"a", "b", "c", "d", "e"})
		assert.InDelta(t, 0.5, score, 0.001)
	})
}

func batchSections() []types.ExperienceSection {
	return []types.ExperienceSection{{
		Subsection: "Platform Engineer - Acme",
		Title:      "Platform Engineer",
		Company:    "Acme",
		Bullets: []types.SelectedBullet{
			{Bullet: types.Bullet{ID: "acme_0", Text: "Managed Kafka clusters for streaming pipelines", Modifiable: true}, RelevanceScore: 0.9},
			{Bullet: types.Bullet{ID: "acme_1", Text: "Wrote documentation", Modifiable: true}, RelevanceScore: 0.5},
			{Bullet: types.Bullet{ID: "acme_2", Text: "Deployed monitoring dashboards", Modifiable: true}, RelevanceScore: 0.7},
		},
	}}
}

func TestEnhanceBatchStopsAtBudget(t *testing.T) {
	client := &fakeClient{reply: "Managed Kafka clusters powering streaming pipelines at scale"}
	e := NewEnhancer(client, zerolog.Nop())

	cfg := types.DefaultGenerationConfig()
	cfg.MaxBulletsToEnhance = 1

	sections := batchSections()
	enhanced, _ := e.EnhanceBatch(context.Background(), sections, "Platform Engineer", nil, cfg)

	assert.Equal(t, 1, enhanced)
	assert.Equal(t, 1, client.calls)

	// The highest-relevance bullet goes first.
	assert.True(t, sections[0].Bullets[0].Enhanced)
	assert.Equal(t, client.reply, sections[0].Bullets[0].EnhancedText)
	assert.False(t, sections[0].Bullets[1].Enhanced)
	assert.False(t, sections[0].Bullets[2].Enhanced)
}

func TestEnhanceBatchKeepsOriginalOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("model offline")}
	e := NewEnhancer(client, zerolog.Nop())

	cfg := types.DefaultGenerationConfig()
	cfg.MaxBulletsToEnhance = 1

	sections := batchSections()
	enhanced, added := e.EnhanceBatch(context.Background(), sections, "Platform Engineer", nil, cfg)

	assert.Zero(t, enhanced)
	assert.Empty(t, added)
	// Twice the budget gets attempted before giving up.
	assert.Equal(t, 2, client.calls)
	for _, b := range sections[0].Bullets {
		assert.False(t, b.Enhanced)
	}
}

func TestEnhanceBatchSkipsMacroBullets(t *testing.T) {
	client := &fakeClient{reply: "Managed Kafka clusters powering streaming pipelines at scale"}
	e := NewEnhancer(client, zerolog.Nop())

	sections := []types.ExperienceSection{{
		Bullets: []types.SelectedBullet{
			{Bullet: types.Bullet{ID: "acme_0", Text: "99.99% uptime across the fleet", CommandName: "uptimeWin", Modifiable: false}, RelevanceScore: 1.0},
		},
	}}
	cfg := types.DefaultGenerationConfig()

	enhanced, _ := e.EnhanceBatch(context.Background(), sections, "SRE", nil, cfg)
	assert.Zero(t, enhanced)
	assert.Zero(t, client.calls)
}
