// Package tailoring builds job-specific resume variants: it selects the most
// relevant bullets, optionally rewrites them with a local model, and renders
// the result back into the LaTeX template.
package tailoring

import (
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/textutil"
	"github.com/jonathan/resume-tailor/internal/types"
)

// strongVerbs open high-impact bullets.
var strongVerbs = []string{
	"architected", "designed", "implemented", "optimized", "automated",
	"led", "managed", "developed", "deployed", "reduced", "increased",
	"improved", "scaled",
}

// Selector picks bullets for a variant using relevance scoring and a greedy
// fill that respects per-job limits.
type Selector struct {
	cfg types.GenerationConfig
	now time.Time
}

// NewSelector returns a selector with the given limits.
func NewSelector(cfg types.GenerationConfig) *Selector {
	return &Selector{cfg: cfg, now: time.Now()}
}

// scoredBullet ties a bullet to its score and position for stable output.
type scoredBullet struct {
	bullet   types.Bullet
	expIndex int
	position int
	score    float64
	matched  []string
}

// Select scores every experience bullet against the job keywords and picks
// up to TargetBullets of them, keeping at least MinBulletsPerJob and at most
// MaxBulletsPerJob per role.
func (s *Selector) Select(resume *types.Resume, keywords []types.Keyword) []types.ExperienceSection {
	topKeywords := keywordTexts(keywords, 20)

	var scored []scoredBullet
	for i, exp := range resume.Experience {
		for j, b := range exp.Bullets {
			sb := scoredBullet{bullet: b, expIndex: i, position: j}
			sb.score, sb.matched = s.scoreBullet(b, exp, topKeywords)
			scored = append(scored, sb)
		}
	}

	picked := s.greedyPick(scored)

	// Group picks by role, preserving document order inside each role.
	sort.Slice(picked, func(a, b int) bool {
		if picked[a].expIndex != picked[b].expIndex {
			return picked[a].expIndex < picked[b].expIndex
		}
		return picked[a].position < picked[b].position
	})

	var sections []types.ExperienceSection
	for _, sb := range picked {
		exp := resume.Experience[sb.expIndex]
		if len(sections) == 0 || sections[len(sections)-1].Subsection != sb.bullet.Subsection {
			sections = append(sections, types.ExperienceSection{
				Subsection: sb.bullet.Subsection,
				Title:      exp.Title,
				Company:    exp.Company,
			})
		}
		last := &sections[len(sections)-1]
		last.Bullets = append(last.Bullets, types.SelectedBullet{
			Bullet:         sb.bullet,
			RelevanceScore: sb.score,
			Reason:         selectionReason(sb, keywordTexts(keywords, 10)),
		})
	}
	return sections
}

// greedyPick takes bullets in descending score order until the target is
// reached, then tops up roles left under the per-job minimum.
func (s *Selector) greedyPick(scored []scoredBullet) []scoredBullet {
	bySc := make([]scoredBullet, len(scored))
	copy(bySc, scored)
	sort.SliceStable(bySc, func(a, b int) bool { return bySc[a].score > bySc[b].score })

	perJob := make(map[int]int)
	taken := make(map[string]bool)
	var picked []scoredBullet
	for _, sb := range bySc {
		if len(picked) >= s.cfg.TargetBullets {
			break
		}
		if perJob[sb.expIndex] >= s.cfg.MaxBulletsPerJob {
			continue
		}
		picked = append(picked, sb)
		perJob[sb.expIndex]++
		taken[sb.bullet.ID] = true
	}

	// Every represented role keeps a minimum presence even if its bullets
	// scored low.
	for _, sb := range bySc {
		if perJob[sb.expIndex] >= s.cfg.MinBulletsPerJob || taken[sb.bullet.ID] {
			continue
		}
		picked = append(picked, sb)
		perJob[sb.expIndex]++
		taken[sb.bullet.ID] = true
	}
	return picked
}

// scoreBullet rates one bullet in [0,1].
func (s *Selector) scoreBullet(b types.Bullet, exp types.Experience, topKeywords []string) (float64, []string) {
	text := strings.ToLower(b.Text)
	score := 0.0

	var matched []string
	for _, kw := range topKeywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	kwScore := float64(len(matched)) / 5.0
	if kwScore > 1.0 {
		kwScore = 1.0
	}
	score += kwScore * 0.4

	if textutil.HasNumber(text) {
		score += 0.2
	}

	words := strings.Fields(text)
	if len(words) > 0 {
		first := strings.Trim(words[0], ",.:;")
		if containsWord(strongVerbs, first) {
			score += 0.15
		} else if anyVerb(text) {
			score += 0.10
		}
	}

	switch n := len(words); {
	case n >= 10 && n <= 25:
		score += 0.10
	case n >= 8 && n <= 30:
		score += 0.05
	}

	score += s.recencyBonus(exp)

	if score > 1.0 {
		score = 1.0
	}
	return score, matched
}

func (s *Selector) recencyBonus(exp types.Experience) float64 {
	if exp.Current {
		return 0.15
	}
	if year := lastYearIn(exp.EndDate); year >= s.now.Year()-2 && year > 0 {
		return 0.10
	}
	return 0.05
}

func selectionReason(sb scoredBullet, topKeywords []string) string {
	var parts []string
	if len(sb.matched) > 0 {
		shown := sb.matched
		if len(shown) > 3 {
			shown = shown[:3]
		}
		parts = append(parts, "Matches keywords: "+strings.Join(shown, ", "))
	}
	text := strings.ToLower(sb.bullet.Text)
	if textutil.HasNumber(text) {
		parts = append(parts, "Contains quantifiable results")
	}
	if anyVerb(text) {
		parts = append(parts, "Strong action verb")
	}
	if sb.score >= 0.8 {
		parts = append(parts, "High relevance score")
	}
	if len(parts) == 0 {
		return "Relevant to role"
	}
	_ = topKeywords
	return strings.Join(parts, "; ")
}

func keywordTexts(keywords []types.Keyword, n int) []string {
	out := make([]string, 0, n)
	for _, kw := range keywords {
		if len(out) >= n {
			break
		}
		out = append(out, strings.ToLower(kw.Text))
	}
	return out
}

func containsWord(list []string, w string) bool {
	for _, s := range list {
		if s == w {
			return true
		}
	}
	return false
}

func anyVerb(text string) bool {
	for _, v := range strongVerbs {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}

func lastYearIn(date string) int {
	year := 0
	for i := 0; i+4 <= len(date); i++ {
		if isDigits(date[i : i+4]) {
			y := int(date[i]-'0')*1000 + int(date[i+1]-'0')*100 + int(date[i+2]-'0')*10 + int(date[i+3]-'0')
			if y > year {
				year = y
			}
		}
	}
	return year
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
