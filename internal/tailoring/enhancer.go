package tailoring

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/textutil"
	"github.com/jonathan/resume-tailor/internal/types"
)

// maxPromptKeywords caps how many missing keywords one prompt may suggest.
// More than a few and the model starts stuffing all of them into the bullet.
const maxPromptKeywords = 3

// Enhancer rewrites selected bullets through the model client and keeps only
// rewrites it trusts.
type Enhancer struct {
	client llm.Client
	log    zerolog.Logger
}

// NewEnhancer wires an enhancer to a model client.
func NewEnhancer(client llm.Client, log zerolog.Logger) *Enhancer {
	return &Enhancer{client: client, log: log.With().Str("component", "enhancer").Logger()}
}

// EnhanceBullet asks the model to rewrite one bullet and grades the answer.
// The returned Enhancement always carries a confidence; the caller decides
// whether to accept it.
func (e *Enhancer) EnhanceBullet(ctx context.Context, text, jobTitle string, missingKeywords []string) (*types.Enhancement, error) {
	if len(missingKeywords) > maxPromptKeywords {
		missingKeywords = missingKeywords[:maxPromptKeywords]
	}

	system, prompt := llm.EnhancePrompt(text, jobTitle, missingKeywords)
	raw, err := e.client.Generate(ctx, system, prompt, llm.Options{
		Temperature: llm.EnhanceTemperature,
		MaxTokens:   llm.EnhanceMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	enhanced := llm.CleanResponse(raw)
	if enhanced == "" {
		return nil, &llm.GenerationError{Message: "model returned empty rewrite"}
	}

	added := keywordsAdded(text, enhanced, missingKeywords)
	enh := &types.Enhancement{
		Original:    text,
		Enhanced:    enhanced,
		Confidence:  gradeRewrite(text, enhanced),
		Improvement: estimateImprovement(enhanced, added),
		KeywordsAdd: added,
	}
	return enh, nil
}

// EnhanceBatch rewrites the highest-relevance modifiable bullets in place.
// It tries up to twice the enhancement budget so that rejected rewrites do
// not leave the budget unspent, and stops once the budget is met. Returns the
// number of bullets enhanced and the keywords those rewrites introduced.
func (e *Enhancer) EnhanceBatch(ctx context.Context, sections []types.ExperienceSection, jobTitle string, missingKeywords []string, cfg types.GenerationConfig) (int, []string) {
	if cfg.MaxBulletsToEnhance <= 0 {
		return 0, nil
	}

	type ref struct {
		section int
		index   int
		score   float64
	}
	var candidates []ref
	for si := range sections {
		for bi, b := range sections[si].Bullets {
			if !b.Bullet.Modifiable {
				continue
			}
			candidates = append(candidates, ref{section: si, index: bi, score: b.RelevanceScore})
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].score > candidates[b].score })
	if limit := cfg.MaxBulletsToEnhance * 2; len(candidates) > limit {
		candidates = candidates[:limit]
	}

	enhanced := 0
	var added []string
	for _, c := range candidates {
		if enhanced >= cfg.MaxBulletsToEnhance {
			break
		}
		if ctx.Err() != nil {
			break
		}
		target := &sections[c.section].Bullets[c.index]

		enh, err := e.EnhanceBullet(ctx, target.Bullet.Text, jobTitle, missingKeywords)
		if err != nil {
			e.log.Warn().Err(err).Str("bullet_id", target.Bullet.ID).Msg("rewrite failed, keeping original")
			continue
		}
		if enh.Confidence < cfg.MinEnhancementConfidence {
			e.log.Debug().
				Str("bullet_id", target.Bullet.ID).
				Float64("confidence", enh.Confidence).
				Msg("rewrite rejected")
			continue
		}

		target.Enhanced = true
		target.EnhancedText = enh.Enhanced
		enhanced++
		added = appendNew(added, enh.KeywordsAdd)
	}
	return enhanced, added
}

// gradeRewrite estimates how trustworthy a rewrite is. Word-count blowups,
// low word overlap with the original, and non-sentence output all mark the
// completion as likely off-script.
func gradeRewrite(original, enhanced string) float64 {
	origWords := len(strings.Fields(original))
	enhWords := len(strings.Fields(enhanced))
	if enhWords > 2*origWords || enhWords*2 < origWords {
		return 0.5
	}
	if wordOverlap(original, enhanced) < 0.3 {
		return 0.6
	}
	first := []rune(enhanced)[0]
	if !unicode.IsUpper(first) {
		return 0.7
	}
	return 0.9
}

// estimateImprovement is a rough delta score for reporting, not a gate.
// Only target keywords the rewrite worked in count toward it, so padding
// words earn nothing.
func estimateImprovement(enhanced string, keywordsAdded []string) float64 {
	score := float64(len(keywordsAdded)) * 0.15
	if score > 0.5 {
		score = 0.5
	}
	if textutil.HasNumber(enhanced) {
		score += 0.3
	}
	fields := strings.Fields(strings.ToLower(enhanced))
	if len(fields) > 0 && containsWord(strongVerbs, strings.Trim(fields[0], ",.:;")) {
		score += 0.2
	}
	return score
}

func keywordsAdded(original, enhanced string, wanted []string) []string {
	origLower := strings.ToLower(original)
	enhLower := strings.ToLower(enhanced)
	var out []string
	for _, kw := range wanted {
		k := strings.ToLower(kw)
		if strings.Contains(enhLower, k) && !strings.Contains(origLower, k) {
			out = append(out, kw)
		}
	}
	return out
}

func wordOverlap(a, b string) float64 {
	setA, setB := wordSet(a), wordSet(b)
	if len(setA) == 0 {
		return 0
	}
	shared := 0
	for w := range setA {
		if setB[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(setA))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range textutil.Words(s) {
		set[w] = true
	}
	return set
}

func appendNew(dst []string, src []string) []string {
	for _, s := range src {
		if !containsWord(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
