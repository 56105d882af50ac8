package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

const sampleJD = `Senior Kafka Platform Engineer

We run Apache Kafka at scale and need someone who lives and breathes
distributed streaming. Kafka experience is essential.

Requirements
- 5+ years of experience operating Kafka in production
- Kubernetes and Docker for container orchestration
- Terraform and Ansible for infrastructure automation
- Python scripting for tooling
- Strong monitoring and high availability background
- CKA or Confluent Certified Administrator preferred

Nice to have
- Disaster recovery planning experience
- Leadership and communication skills
`

func findKeyword(keywords []types.Keyword, text string) *types.Keyword {
	for i := range keywords {
		if strings.EqualFold(keywords[i].Text, text) {
			return &keywords[i]
		}
	}
	return nil
}

func TestExtract(t *testing.T) {
	keywords := NewExtractor(0).Extract(sampleJD)
	require.NotEmpty(t, keywords)
	assert.LessOrEqual(t, len(keywords), DefaultTopKeywords)

	t.Run("technologies found", func(t *testing.T) {
		for _, name := range []string{"kafka", "kubernetes", "docker", "terraform", "ansible", "python"} {
			kw := findKeyword(keywords, name)
			require.NotNil(t, kw, "expected keyword %q", name)
			assert.Equal(t, types.CategoryTechnical, kw.Category)
			assert.Positive(t, kw.Frequency)
		}
	})

	t.Run("repeated requirement scores high", func(t *testing.T) {
		kafka := findKeyword(keywords, "kafka")
		require.NotNil(t, kafka)
		// Named under requirements, early in the posting, and repeated:
		// the importance bonuses saturate at the cap.
		assert.InDelta(t, 1.0, kafka.Importance, 1e-9)
		assert.NotEmpty(t, kafka.Synonyms)
	})

	t.Run("certification detected", func(t *testing.T) {
		cka := findKeyword(keywords, "Cka")
		require.NotNil(t, cka)
		assert.Equal(t, types.CategoryCertification, cka.Category)
		assert.InDelta(t, 0.9, cka.Importance, 1e-9)
	})

	t.Run("domain terms detected", func(t *testing.T) {
		for _, name := range []string{"monitoring", "high availability", "disaster recovery"} {
			kw := findKeyword(keywords, name)
			require.NotNil(t, kw, "expected keyword %q", name)
		}
	})

	t.Run("soft skills rank last", func(t *testing.T) {
		leadership := findKeyword(keywords, "Leadership")
		require.NotNil(t, leadership)
		assert.Equal(t, types.CategorySoft, leadership.Category)
		assert.InDelta(t, 0.5, leadership.Importance, 1e-9)
	})

	t.Run("sorted by category priority", func(t *testing.T) {
		last := 100
		for _, kw := range keywords {
			p := kw.Category.Priority()
			assert.LessOrEqual(t, p, last)
			last = p
		}
	})
}

func TestExtractSynonymOnly(t *testing.T) {
	keywords := NewExtractor(0).Extract("We value observability and telemetry in everything we ship.")

	kw := findKeyword(keywords, "monitoring")
	require.NotNil(t, kw, "synonym occurrences should credit the canonical term")
	assert.Equal(t, types.CategoryTechnical, kw.Category)
}

func TestExtractRepeatable(t *testing.T) {
	// Keyword order feeds the top-N cut and bullet selection, so repeated
	// extractions of the same posting must agree element for element.
	first := NewExtractor(0).Extract(sampleJD)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NewExtractor(0).Extract(sampleJD), "run %d diverged", i+1)
	}

	t.Run("equal importance breaks ties alphabetically", func(t *testing.T) {
		tied := rank([]types.Keyword{
			{Text: "terraform", Category: types.CategoryTechnical, Importance: 0.5},
			{Text: "ansible", Category: types.CategoryTechnical, Importance: 0.5},
			{Text: "docker", Category: types.CategoryTechnical, Importance: 0.5},
		}, 10)
		assert.Equal(t, "ansible", tied[0].Text)
		assert.Equal(t, "docker", tied[1].Text)
		assert.Equal(t, "terraform", tied[2].Text)
	})
}

func TestExtractEmpty(t *testing.T) {
	assert.Empty(t, NewExtractor(0).Extract(""))
}

func TestImportanceBase(t *testing.T) {
	// A term mentioned once, late, with no emphasis: base plus one
	// frequency step.
	text := strings.Repeat("filler words here. ", 40) + "we also use docker somewhere"
	assert.InDelta(t, 0.6, importance(text, "docker", 1), 1e-9)
}
