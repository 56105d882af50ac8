package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionedDoc = `
\section{Experience}
experience content
\subsection{Early Career}
early content
\section*{Technical Skills}
skills content
`

func TestExtractSections(t *testing.T) {
	sections := ExtractSections(sectionedDoc)
	require.Len(t, sections, 3)

	assert.Equal(t, "Experience", sections[0].Name)
	assert.Equal(t, 1, sections[0].Level)
	// A level-1 section swallows its subsections.
	assert.Contains(t, sections[0].Content, "early content")
	assert.NotContains(t, sections[0].Content, "skills content")

	assert.Equal(t, "Early Career", sections[1].Name)
	assert.Equal(t, 2, sections[1].Level)

	assert.Equal(t, "Technical Skills", sections[2].Name)
	assert.Equal(t, 1, sections[2].Level)
	assert.Contains(t, sections[2].Content, "skills content")
}

func TestFindSection(t *testing.T) {
	sections := ExtractSections(sectionedDoc)

	sec := FindSection(sections, `(?:technical\s*)?skills|technologies`)
	require.NotNil(t, sec)
	assert.Equal(t, "Technical Skills", sec.Name)

	assert.Nil(t, FindSection(sections, `education`))
}

func TestItems(t *testing.T) {
	content := `
\begin{itemize}[leftmargin=0.15in]
  \item First bullet
  \item Second bullet
    spanning two lines
\end{itemize}
`
	blocks := ListBlocks(content)
	require.Len(t, blocks, 1)

	items := Items(blocks[0])
	require.Len(t, items, 2)
	assert.Equal(t, "First bullet", items[0])
	assert.Contains(t, items[1], "spanning two lines")
}
