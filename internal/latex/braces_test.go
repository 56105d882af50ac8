package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBraceGroup(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pos      int
		expected string
		next     int
	}{
		{
			name:     "simple group",
			text:     "{hello}",
			pos:      0,
			expected: "hello",
			next:     7,
		},
		{
			name:     "nested braces kept",
			text:     `{led \textbf{Kafka} upgrades}`,
			pos:      0,
			expected: `led \textbf{Kafka} upgrades`,
			next:     29,
		},
		{
			name:     "unbalanced returns rest",
			text:     "{never closed",
			pos:      0,
			expected: "never closed",
			next:     13,
		},
		{
			name:     "not at a brace",
			text:     "plain",
			pos:      0,
			expected: "",
			next:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, next := BraceGroup(tt.text, tt.pos)
			assert.Equal(t, tt.expected, content)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestBraceArgs(t *testing.T) {
	text := "{Engineer}  {2020 -- Present}\n  {Acme}{Remote} trailing"
	args, next := BraceArgs(text, 0, 4)

	assert.Equal(t, []string{"Engineer", "2020 -- Present", "Acme", "Remote"}, args)
	assert.Equal(t, " trailing", text[next:])
}

func TestBraceArgsStopsShort(t *testing.T) {
	args, _ := BraceArgs("{only one} and text", 0, 4)
	assert.Equal(t, []string{"only one"}, args)
}

func TestToPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "formatting unwrapped",
			input:    `Managed \textbf{Kafka} clusters with \textit{99.9\%} uptime`,
			expected: "Managed Kafka clusters with 99.9% uptime",
		},
		{
			name:     "nested formatting",
			input:    `\textbf{\texttt{kubectl}} rollouts`,
			expected: "kubectl rollouts",
		},
		{
			name:     "commands dropped",
			input:    `\hfill Remote \\ \vspace{2pt} done`,
			expected: "Remote 2pt done",
		},
		{
			name:     "escapes and dashes",
			input:    `R\&D team, 2019--2021`,
			expected: "R&D team, 2019-2021",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPlainText(tt.input))
		})
	}
}
