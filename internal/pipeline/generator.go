// Package pipeline provides the high-level orchestration for generating a
// tailored resume variant from a base resume and a job description.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-tailor/internal/ats"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/latex"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Progress checkpoints reported during a run.
const (
	ProgressStarted   = 0
	ProgressParsed    = 10
	ProgressKeywords  = 20
	ProgressSelected  = 40
	ProgressRendered  = 80
	ProgressCompleted = 100
)

// ProgressFunc receives checkpoint updates during generation.
type ProgressFunc func(percent int, message string)

// Options holds the inputs for one generation run.
type Options struct {
	BaseResumePath string
	JobTitle       string
	Company        string
	JobDescription string
	JDFilePath     string
	JobURL         string
	OutputDir      string
	Config         types.GenerationConfig
	OnProgress     ProgressFunc
}

// Generator runs the full tailoring pipeline. The database and model client
// are both optional: without a client the AI steps degrade to heuristics,
// and without a database nothing is persisted.
type Generator struct {
	store  *db.DB
	client llm.Client
	log    zerolog.Logger
}

// NewGenerator wires a generator.
func NewGenerator(store *db.DB, client llm.Client, log zerolog.Logger) *Generator {
	return &Generator{store: store, client: client, log: log.With().Str("component", "pipeline").Logger()}
}

// Generate produces a variant: parse, extract, select, enhance, render,
// compile, score, persist. It reports progress through opts.OnProgress.
func (g *Generator) Generate(ctx context.Context, opts Options) (*types.Variant, error) {
	progress := opts.OnProgress
	if progress == nil {
		progress = func(int, string) {}
	}
	progress(ProgressStarted, "starting generation")

	if strings.TrimSpace(opts.JobDescription) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	resume, err := latex.NewParser().ParseFile(opts.BaseResumePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base resume: %w", err)
	}
	progress(ProgressParsed, fmt.Sprintf("parsed resume with %d bullets", len(resume.AllBullets)))

	posting := ats.ParseJobDescription(opts.JobDescription)
	if opts.JobTitle != "" {
		posting.Title = opts.JobTitle
	}
	posting.Company = opts.Company
	keywords := ats.NewExtractor(ats.DefaultTopKeywords).Extract(opts.JobDescription)
	progress(ProgressKeywords, fmt.Sprintf("extracted %d keywords", len(keywords)))

	variant := &types.Variant{
		ID:          uuid.NewString(),
		JobTitle:    opts.JobTitle,
		Company:     opts.Company,
		BaseResume:  opts.BaseResumePath,
		AIEnabled:   opts.Config.UseAIEnhancement,
		GeneratedAt: time.Now(),
	}

	variant.Sections = tailoring.NewSelector(opts.Config).Select(resume, keywords)
	variant.TotalBullets = variant.SelectedCount()
	variant.KeywordsTargets = topKeywordTexts(keywords, 10)

	missing := missingKeywordTexts(resume, keywords)
	aiReady := opts.Config.UseAIEnhancement && g.client != nil && g.client.IsAvailable(ctx)
	if aiReady {
		enhancer := tailoring.NewEnhancer(g.client, g.log)
		enhanced, added := enhancer.EnhanceBatch(ctx, variant.Sections, opts.JobTitle, missing, opts.Config)
		variant.BulletsEnhanced = enhanced
		variant.KeywordsAdded = added
	} else if opts.Config.UseAIEnhancement {
		g.log.Warn().Msg("model server unavailable, skipping bullet enhancement")
	}

	var summaryClient llm.Client
	if aiReady {
		summaryClient = g.client
	}
	variant.Summary, variant.SummarySource = tailoring.NewSummaryWriter(summaryClient, g.log).
		Write(ctx, resume, opts.JobTitle, opts.Company, keywords)

	var appended []string
	variant.Skills, appended = tailoring.OptimizeSkills(resume.Skills, keywords)
	variant.KeywordsAdded = mergeUnique(variant.KeywordsAdded, appended)
	progress(ProgressSelected, fmt.Sprintf("selected %d bullets, enhanced %d", variant.TotalBullets, variant.BulletsEnhanced))

	if err := g.render(ctx, variant, opts); err != nil {
		return nil, err
	}
	progress(ProgressRendered, "rendered LaTeX output")

	if opts.Config.AutoScore {
		g.score(variant, keywords, posting, opts)
	}

	if err := g.writeMetadata(variant, opts.OutputDir); err != nil {
		return nil, err
	}
	if err := g.persist(ctx, variant, opts); err != nil {
		return nil, err
	}

	progress(ProgressCompleted, "generation complete")
	g.log.Info().Str("variant", variant.ShortID()).Int("bullets", variant.TotalBullets).Msg("variant generated")
	return variant, nil
}

// render splices the variant into the base source, writes the .tex file, and
// compiles it when pdflatex is present.
func (g *Generator) render(ctx context.Context, variant *types.Variant, opts Options) error {
	source, err := os.ReadFile(opts.BaseResumePath)
	if err != nil {
		return fmt.Errorf("failed to read base resume: %w", err)
	}
	body := stripFrontmatter(string(source))

	rendered, err := tailoring.Render(body, variant)
	if err != nil {
		return fmt.Errorf("failed to render variant: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	texPath := filepath.Join(opts.OutputDir, variant.OutputStem()+".tex")
	if err := os.WriteFile(texPath, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write variant: %w", err)
	}
	variant.LatexPath = texPath

	pdfPath, err := tailoring.NewCompiler(g.log).Compile(ctx, texPath)
	if err != nil {
		g.log.Warn().Err(err).Msg("PDF compilation failed, keeping .tex output")
		return nil
	}
	variant.PDFPath = pdfPath
	return nil
}

// score re-parses the rendered document so the ATS evaluation sees exactly
// what an employer's parser would see.
func (g *Generator) score(variant *types.Variant, keywords []types.Keyword, posting types.JobPosting, opts Options) {
	parsed, err := latex.NewParser().ParseFile(variant.LatexPath)
	if err != nil {
		g.log.Warn().Err(err).Msg("cannot re-parse rendered variant, skipping scoring")
		return
	}
	variant.ATS = ats.NewScorer().ScoreAgainst(parsed, keywords, posting, opts.Company)
}

func (g *Generator) writeMetadata(variant *types.Variant, outputDir string) error {
	path := filepath.Join(outputDir, variant.OutputStem()+".json")
	data, err := json.MarshalIndent(variant, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	variant.MetadataPath = path
	return nil
}

func (g *Generator) persist(ctx context.Context, variant *types.Variant, opts Options) error {
	if g.store == nil {
		return nil
	}

	jobID, err := g.store.UpsertJob(ctx, db.Job{
		Company:        opts.Company,
		JobTitle:       opts.JobTitle,
		JobDescription: opts.JobDescription,
		JDFilePath:     opts.JDFilePath,
		JobURL:         opts.JobURL,
	})
	if err != nil {
		return err
	}

	record := db.VariantRecord{
		VariantID:      variant.ShortID(),
		JobID:          jobID,
		BaseResumePath: variant.BaseResume,
		LatexPath:      variant.LatexPath,
		PDFPath:        variant.PDFPath,
		MetadataPath:   variant.MetadataPath,
		TargetBullets:  opts.Config.TargetBullets,
		AIEnabled:      variant.AIEnabled,
		Enhanced:       variant.BulletsEnhanced,
		TotalBullets:   variant.TotalBullets,
		KeywordsAdded:  variant.KeywordsAdded,
	}
	var score *db.ScoreRecord
	if variant.ATS != nil {
		score = &db.ScoreRecord{
			OverallScore:    variant.ATS.Overall,
			KeywordScore:    variant.ATS.KeywordScore,
			FormatScore:     variant.ATS.FormatScore,
			ExperienceScore: variant.ATS.ExperienceScore,
			RequiredFound:   variant.ATS.MatchedCount(),
			RequiredTotal:   len(variant.ATS.Matches),
			MissingKeywords: keywordTexts(variant.ATS.MissingKeywords),
			Recommendations: variant.ATS.Recommendations.Critical,
		}
	}
	return g.store.AddVariantWithScore(ctx, record, score)
}

// stripFrontmatter removes the leading fenced metadata block so pdflatex
// never sees it.
func stripFrontmatter(source string) string {
	trimmed := strings.TrimLeft(source, " \t\r\n")
	if !strings.HasPrefix(trimmed, "---") {
		return source
	}
	parts := strings.SplitN(trimmed, "---", 3)
	if len(parts) < 3 {
		return source
	}
	return strings.TrimLeft(parts[2], "\r\n")
}

func topKeywordTexts(keywords []types.Keyword, n int) []string {
	out := make([]string, 0, n)
	for _, kw := range keywords {
		if len(out) >= n {
			break
		}
		out = append(out, kw.Text)
	}
	return out
}

func keywordTexts(keywords []types.Keyword) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, kw.Text)
	}
	return out
}

// missingKeywordTexts lists job keywords the resume does not mention,
// highest importance first.
func missingKeywordTexts(resume *types.Resume, keywords []types.Keyword) []string {
	var out []string
	for _, m := range ats.NewMatcher().Match(resume, keywords) {
		if m.MatchType == types.MatchMissing {
			out = append(out, m.Keyword.Text)
		}
	}
	return out
}

func mergeUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
