package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const macroPreamble = `
\newcommand{\kafkaUpgrade}{Upgraded \textbf{Kafka} from 2.8 to 3.5 across 40 brokers}
\newcommand{\oncallNote}{Cut on-call pages by 60\%}
\newcommand{\highlight}[1]{\textbf{#1}}
\renewcommand{\oncallNote}{Cut on-call pages by 70\%}
`

func TestExtractMacros(t *testing.T) {
	table := ExtractMacros(macroPreamble)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"kafkaUpgrade", "oncallNote", "highlight"}, table.Names())

	m, ok := table.Lookup("kafkaUpgrade")
	require.True(t, ok)
	assert.Equal(t, 0, m.ArgCount)
	assert.Equal(t, "Upgraded Kafka from 2.8 to 3.5 across 40 brokers", m.Plain)

	// renewcommand overwrites the earlier definition.
	m, ok = table.Lookup("oncallNote")
	require.True(t, ok)
	assert.Equal(t, "Cut on-call pages by 70%", m.Plain)

	m, ok = table.Lookup("highlight")
	require.True(t, ok)
	assert.Equal(t, 1, m.ArgCount)
}

func TestExpandText(t *testing.T) {
	table := ExtractMacros(macroPreamble)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare call",
			input:    `\kafkaUpgrade`,
			expected: "Upgraded Kafka from 2.8 to 3.5 across 40 brokers",
		},
		{
			name:     "call with empty braces",
			input:    `\oncallNote{}`,
			expected: "Cut on-call pages by 70%",
		},
		{
			name:     "macros with arguments are left alone",
			input:    `\highlight{Kafka}`,
			expected: `\highlight{Kafka}`,
		},
		{
			name:     "unknown command untouched",
			input:    `\resumeItem{text}`,
			expected: `\resumeItem{text}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.ExpandText(tt.input))
		})
	}
}

func TestFindCall(t *testing.T) {
	table := ExtractMacros(macroPreamble)

	name, ok := table.FindCall(`\resumeItem{\kafkaUpgrade{}}`)
	assert.True(t, ok)
	assert.Equal(t, "kafkaUpgrade", name)

	_, ok = table.FindCall(`\resumeItem{plain text bullet}`)
	assert.False(t, ok)
}
