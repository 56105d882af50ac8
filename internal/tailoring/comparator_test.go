package tailoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func comparatorResume(path string, bullets ...string) *types.Resume {
	r := &types.Resume{SourceFile: path}
	for i, text := range bullets {
		r.AllBullets = append(r.AllBullets, types.Bullet{
			ID:      "b" + string(rune('0'+i)),
			Text:    text,
			Section: "experience",
		})
	}
	return r
}

func TestCompareClassifiesChanges(t *testing.T) {
	base := comparatorResume("base.tex",
		"Managed Kafka clusters for streaming pipelines",
		"Wrote internal documentation for the on-call rotation",
		"Deployed monitoring dashboards in Grafana",
	)
	variant := comparatorResume("variant.tex",
		"Managed Kafka clusters powering streaming pipelines at scale",
		"Wrote internal documentation for the on-call rotation",
		"Automated failover testing across regions",
	)
	enhanced := map[string]string{
		"Managed Kafka clusters for streaming pipelines": "Managed Kafka clusters powering streaming pipelines at scale",
	}

	cmp := NewComparator().Compare(base, variant, enhanced)

	require.Len(t, cmp.Sections, 1)
	sec := cmp.Sections[0]
	assert.Equal(t, "experience", sec.Section)
	assert.Equal(t, 1, sec.Enhanced)
	assert.Equal(t, 1, sec.Unchanged)
	assert.Equal(t, 1, sec.Removed)
	assert.Equal(t, 1, sec.Added)
	assert.Zero(t, sec.Modified)

	assert.Equal(t, 3, cmp.TotalChanges())
	assert.True(t, cmp.HasSignificantChanges())
	assert.Greater(t, cmp.Similarity, 0.5)
	assert.Less(t, cmp.Similarity, 0.95)
}

func TestCompareIdenticalDocuments(t *testing.T) {
	base := comparatorResume("base.tex",
		"Managed Kafka clusters for streaming pipelines",
		"Wrote internal documentation for the on-call rotation",
	)
	variant := comparatorResume("variant.tex",
		"Managed Kafka clusters for streaming pipelines",
		"Wrote internal documentation for the on-call rotation",
	)

	cmp := NewComparator().Compare(base, variant, nil)

	require.Len(t, cmp.Sections, 1)
	assert.Equal(t, 2, cmp.Sections[0].Unchanged)
	assert.Zero(t, cmp.TotalChanges())
	assert.False(t, cmp.HasSignificantChanges())
	assert.InDelta(t, 1.0, cmp.Similarity, 0.001)
	assert.InDelta(t, 0.0, cmp.ChangeScore, 0.1)
}

func TestCompareNewKeywords(t *testing.T) {
	base := comparatorResume("base.tex", "Managed Kafka clusters")
	variant := comparatorResume("variant.tex", "Managed Kafka clusters with Terraform and Prometheus")

	cmp := NewComparator().Compare(base, variant, nil)

	assert.Contains(t, cmp.NewKeywords, "terraform")
	assert.Contains(t, cmp.NewKeywords, "prometheus")
	assert.NotContains(t, cmp.NewKeywords, "kafka")
	assert.LessOrEqual(t, len(cmp.NewKeywords), 10)
}

func TestCompareModifiedWithoutEnhancementMap(t *testing.T) {
	base := comparatorResume("base.tex", "Managed Kafka clusters for streaming pipelines")
	variant := comparatorResume("variant.tex", "Managed Kafka clusters for streaming and batch pipelines")

	cmp := NewComparator().Compare(base, variant, nil)

	require.Len(t, cmp.Sections, 1)
	require.Len(t, cmp.Sections[0].Changes, 1)
	ch := cmp.Sections[0].Changes[0]
	assert.Contains(t, []types.ChangeType{types.ChangeModified, types.ChangeUnchanged}, ch.Type)
	assert.Greater(t, ch.Similarity, 0.5)
}
