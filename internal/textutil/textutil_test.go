package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple sentence",
			input:    "Managed Kafka clusters",
			expected: []string{"managed", "kafka", "clusters"},
		},
		{
			name:     "punctuation separated",
			input:    "CI/CD, monitoring; alerting.",
			expected: []string{"ci", "cd", "monitoring", "alerting"},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Words(tt.input))
		})
	}
}

func TestContentWords(t *testing.T) {
	got := ContentWords("We run a 24x7 Kafka platform on K8s")
	// Short tokens and non-alphanumeric survivors are dropped.
	assert.Equal(t, []string{"run", "24x7", "kafka", "platform", "k8s"}, got)
}

func TestSentences(t *testing.T) {
	got := Sentences("First line.\nSecond! Third? ")
	assert.Equal(t, []string{"First line", "Second", "Third"}, got)
}

func TestNGrams(t *testing.T) {
	words := []string{"kafka", "cluster", "management"}

	assert.Equal(t, []string{"kafka cluster", "cluster management"}, NGrams(words, 2))
	assert.Equal(t, []string{"kafka cluster management"}, NGrams(words, 3))
	assert.Nil(t, NGrams(words, 4))
	assert.Nil(t, NGrams(words, 0))
}

func TestHasNumber(t *testing.T) {
	assert.True(t, HasNumber("reduced latency by 40%"))
	assert.True(t, HasNumber("supports 100+ brokers"))
	assert.False(t, HasNumber("improved reliability"))
}

func TestCountOccurrences(t *testing.T) {
	assert.Equal(t, 2, CountOccurrences("Kafka and more kafka", "kafka"))
	assert.Equal(t, 0, CountOccurrences("text", ""))
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "identical", a: "kubernetes", b: "kubernetes", expected: 1.0},
		{name: "both empty", a: "", b: "", expected: 1.0},
		{name: "disjoint", a: "abc", b: "xyz", expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Ratio(tt.a, tt.b), 1e-9)
		})
	}

	// Close variants should clear the fuzzy matching threshold.
	assert.GreaterOrEqual(t, Ratio("kubernetes", "kubernete"), 0.85)
	assert.Less(t, Ratio("kafka", "splunk"), 0.85)
}

func TestBestWordMatch(t *testing.T) {
	word, score := BestWordMatch("terraform", []string{"platform", "terraforms", "git"})
	assert.Equal(t, "terraforms", word)
	assert.Greater(t, score, 0.9)

	word, score = BestWordMatch("anything", nil)
	assert.Equal(t, "", word)
	assert.Zero(t, score)
}

func TestStem(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{name: "manage family", words: []string{"manage", "managed", "managing"}},
		{name: "deploy family", words: []string{"deploy", "deployed", "deploying"}},
		{name: "monitor family", words: []string{"monitoring", "monitored"}},
		{name: "optimize family", words: []string{"optimize", "optimized", "optimizing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem := Stem(tt.words[0])
			for _, w := range tt.words[1:] {
				assert.Equal(t, stem, Stem(w), "Stem(%q)", w)
			}
		})
	}

	// Short words pass through untouched.
	assert.Equal(t, "aws", Stem("AWS"))
	assert.Equal(t, "go", Stem("go"))
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.True(t, IsStopWord("With"))
	assert.False(t, IsStopWord("kafka"))
}
