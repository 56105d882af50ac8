package tailoring

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/textutil"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Comparator diffs a base resume against a generated variant at the bullet
// level. Matching runs in three passes: known AI rewrites first, then fuzzy
// pairing of edited bullets, then whatever is left counts as added or
// removed.
type Comparator struct{}

// NewComparator returns a bullet-level resume differ.
func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare diffs the two parsed documents section by section. enhancedPairs
// maps original bullet text to its accepted AI rewrite, taken from the
// variant's metadata; pass nil when that information is unavailable.
func (c *Comparator) Compare(base, variant *types.Resume, enhancedPairs map[string]string) *types.Comparison {
	cmp := &types.Comparison{
		BasePath:    base.SourceFile,
		VariantPath: variant.SourceFile,
	}

	sections := sectionNames(base, variant)
	for _, name := range sections {
		baseTexts := bulletTexts(base.BulletsBySection(name))
		variantTexts := bulletTexts(variant.BulletsBySection(name))
		sc := diffSection(name, baseTexts, variantTexts, enhancedPairs)
		cmp.Sections = append(cmp.Sections, sc)
	}

	cmp.NewKeywords = newKeywords(base, variant)
	cmp.Similarity = textutil.Ratio(joinBullets(base), joinBullets(variant))
	cmp.ChangeScore = (1 - cmp.Similarity) * 100
	return cmp
}

// diffSection matches bullets in three passes and tallies the result.
func diffSection(name string, base, variant []string, enhancedPairs map[string]string) types.SectionChange {
	sc := types.SectionChange{Section: name}
	baseUsed := make([]bool, len(base))
	variantUsed := make([]bool, len(variant))

	record := func(ch types.BulletChange) {
		ch.Section = name
		sc.Changes = append(sc.Changes, ch)
		switch ch.Type {
		case types.ChangeAdded:
			sc.Added++
		case types.ChangeRemoved:
			sc.Removed++
		case types.ChangeModified:
			sc.Modified++
		case types.ChangeEnhanced:
			sc.Enhanced++
		default:
			sc.Unchanged++
		}
	}

	// Pass 1: pair bullets through the recorded AI rewrites.
	for bi, orig := range base {
		enhanced, ok := enhancedPairs[orig]
		if !ok {
			continue
		}
		for vi, v := range variant {
			if variantUsed[vi] {
				continue
			}
			if v == enhanced || textutil.Ratio(v, enhanced) > 0.8 {
				baseUsed[bi] = true
				variantUsed[vi] = true
				record(types.BulletChange{
					Type:       types.ChangeEnhanced,
					Original:   orig,
					Modified:   v,
					Similarity: textutil.Ratio(orig, v),
				})
				break
			}
		}
	}

	// Pass 2: best-pair matching for everything else. A close pair is
	// unchanged, a looser one is a manual or selection edit.
	for bi, orig := range base {
		if baseUsed[bi] {
			continue
		}
		bestIdx, bestSim := -1, 0.5
		for vi, v := range variant {
			if variantUsed[vi] {
				continue
			}
			if sim := textutil.Ratio(orig, v); sim > bestSim {
				bestIdx, bestSim = vi, sim
			}
		}
		if bestIdx < 0 {
			continue
		}
		baseUsed[bi] = true
		variantUsed[bestIdx] = true
		typ := types.ChangeModified
		if bestSim >= 0.9 {
			typ = types.ChangeUnchanged
		}
		record(types.BulletChange{
			Type:       typ,
			Original:   orig,
			Modified:   variant[bestIdx],
			Similarity: bestSim,
		})
	}

	// Pass 3: leftovers.
	for bi, orig := range base {
		if !baseUsed[bi] {
			record(types.BulletChange{Type: types.ChangeRemoved, Original: orig})
		}
	}
	for vi, v := range variant {
		if !variantUsed[vi] {
			record(types.BulletChange{Type: types.ChangeAdded, Modified: v})
		}
	}
	return sc
}

// newKeywords lists content words the variant introduces, longest-reach
// first capped at ten.
func newKeywords(base, variant *types.Resume) []string {
	baseWords := wordSet(joinBullets(base) + " " + base.Summary)
	seen := make(map[string]bool)
	var out []string
	for _, w := range textutil.Words(joinBullets(variant) + " " + variant.Summary) {
		if len(w) <= 3 || textutil.IsStopWord(w) || baseWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Strings(out)
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

func sectionNames(base, variant *types.Resume) []string {
	var names []string
	seen := make(map[string]bool)
	for _, b := range append(append([]types.Bullet{}, base.AllBullets...), variant.AllBullets...) {
		if b.Section == "" || seen[b.Section] {
			continue
		}
		seen[b.Section] = true
		names = append(names, b.Section)
	}
	return names
}

func bulletTexts(bullets []types.Bullet) []string {
	out := make([]string, len(bullets))
	for i, b := range bullets {
		out[i] = strings.TrimSpace(b.Text)
	}
	return out
}

func joinBullets(r *types.Resume) string {
	var parts []string
	for _, b := range r.AllBullets {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " ")
}
