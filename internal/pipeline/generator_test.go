package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

func defaultConfig() types.GenerationConfig {
	return types.DefaultGenerationConfig()
}

const baseResume = `---
name: Jordan Smith
target_role: Platform Engineer
---
\documentclass{article}
\begin{document}
{\Huge \bfseries Jordan Smith}\\
jordan@example.com | 555-123-4567

%----------SUMMARY----------
\section*{Summary}
Site reliability engineer with eight years of experience running distributed systems.
%----------EXPERIENCE----------
\section{Experience}
\resumeSubheading{Platform Engineer}{Jan 2021 -- Present}{Acme}{Remote}
\resumeItemListStart
      \resumeItem{Automated Kafka cluster deployments with Terraform, cutting release time by 70\%}
      \resumeItem{Managed Kubernetes clusters serving production traffic}
\resumeItemListEnd
%----------SKILLS----------
\section{Skills}
\begin{itemize}
  \item Technical Skills: Python, Kafka, Kubernetes
  \item Tools: Docker, Terraform
\end{itemize}
\end{document}
`

const jobDescription = `Platform Engineer

We are hiring a Platform Engineer to run our streaming infrastructure.

Requirements:
- 5+ years running Kafka in production
- Kubernetes and Docker experience required
- Terraform for infrastructure as code
- Monitoring with Prometheus and Grafana
`

type offlineClient struct{}

func (offlineClient) Generate(context.Context, string, string, llm.Options) (string, error) {
	return "", &llm.GenerationError{Message: "offline"}
}
func (offlineClient) IsAvailable(context.Context) bool { return false }
func (offlineClient) Model() string                    { return "offline" }

func writeBaseResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.tex")
	require.NoError(t, os.WriteFile(path, []byte(baseResume), 0644))
	return path
}

func TestGenerateEndToEnd(t *testing.T) {
	outDir := t.TempDir()
	g := NewGenerator(nil, offlineClient{}, zerolog.Nop())

	var checkpoints []int
	variant, err := g.Generate(context.Background(), Options{
		BaseResumePath: writeBaseResume(t),
		JobTitle:       "Platform Engineer",
		Company:        "Acme",
		JobDescription: jobDescription,
		OutputDir:      outDir,
		Config:         defaultConfig(),
		OnProgress: func(percent int, _ string) {
			checkpoints = append(checkpoints, percent)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 10, 20, 40, 80, 100}, checkpoints)
	assert.Equal(t, 2, variant.TotalBullets)
	assert.Zero(t, variant.BulletsEnhanced, "offline model means no enhancement")

	texData, err := os.ReadFile(variant.LatexPath)
	require.NoError(t, err)
	tex := string(texData)
	assert.Contains(t, tex, `\resumeItem{`)
	assert.NotContains(t, tex, "---\nname:", "frontmatter is stripped from output")
	assert.Contains(t, tex, "Specialized in", "summary falls back to keyword injection")

	require.NotEmpty(t, variant.MetadataPath)
	meta, err := os.ReadFile(variant.MetadataPath)
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"variant_id"`)

	require.NotNil(t, variant.ATS, "auto scoring runs by default")
	assert.Greater(t, variant.ATS.Overall, 0.0)
}

func TestGenerateOutputStemNamesFiles(t *testing.T) {
	outDir := t.TempDir()
	g := NewGenerator(nil, offlineClient{}, zerolog.Nop())

	variant, err := g.Generate(context.Background(), Options{
		BaseResumePath: writeBaseResume(t),
		JobTitle:       "Platform Engineer",
		Company:        "Acme",
		JobDescription: jobDescription,
		OutputDir:      outDir,
		Config:         defaultConfig(),
	})
	require.NoError(t, err)

	base := filepath.Base(variant.LatexPath)
	assert.True(t, strings.HasPrefix(base, "resume_Acme_platform_engineer_"), base)
	assert.True(t, strings.HasSuffix(base, ".tex"))
}

func TestGeneratePersists(t *testing.T) {
	ctx := context.Background()
	store, err := db.Open(ctx, filepath.Join(t.TempDir(), "tailor.db"))
	require.NoError(t, err)
	defer store.Close()

	g := NewGenerator(store, offlineClient{}, zerolog.Nop())
	variant, err := g.Generate(ctx, Options{
		BaseResumePath: writeBaseResume(t),
		JobTitle:       "Platform Engineer",
		Company:        "Acme",
		JobDescription: jobDescription,
		OutputDir:      t.TempDir(),
		Config:         defaultConfig(),
	})
	require.NoError(t, err)

	records, err := store.ListVariants(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, variant.ShortID(), records[0].VariantID)
	assert.Equal(t, "Acme", records[0].Company)
	require.NotNil(t, records[0].Score, "auto score is stored with the variant")
}

func TestGenerateMissingResume(t *testing.T) {
	g := NewGenerator(nil, offlineClient{}, zerolog.Nop())
	_, err := g.Generate(context.Background(), Options{
		BaseResumePath: "/no/such/resume.tex",
		JobDescription: jobDescription,
		OutputDir:      t.TempDir(),
		Config:         defaultConfig(),
	})
	require.Error(t, err)
}

func TestStripFrontmatter(t *testing.T) {
	assert.Equal(t, "\\documentclass{article}\n",
		stripFrontmatter("---\nname: x\n---\n\\documentclass{article}\n"))
	assert.Equal(t, "\\documentclass{article}\n",
		stripFrontmatter("\\documentclass{article}\n"))
}
