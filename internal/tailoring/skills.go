package tailoring

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// techIndicators gate which job description keywords may be appended to the
// skills section. Free-text phrases from the posting stay out.
var techIndicators = map[string]bool{
	"kafka": true, "kubernetes": true, "docker": true, "python": true,
	"aws": true, "terraform": true, "jenkins": true, "git": true,
	"linux": true, "monitoring": true,
}

// OptimizeSkills reorders each skills category so the entries matching the
// job keywords come first, then appends recognized technologies from the
// posting that the resume does not list yet. Returns the reordered skills
// and the appended entries.
func OptimizeSkills(skills types.Skills, keywords []types.Keyword) (types.Skills, []string) {
	kw := keywordTexts(keywords, 20)

	out := types.Skills{
		Technical:      reorderByRelevance(skills.Technical, kw),
		Tools:          reorderByRelevance(skills.Tools, kw),
		Languages:      reorderByRelevance(skills.Languages, kw),
		Certifications: skills.Certifications,
	}

	appended := missingTech(out, keywordTexts(keywords, 10))
	out.Technical = append(out.Technical, appended...)
	return out, appended
}

// reorderByRelevance is a stable sort by match score, so the original order
// breaks ties.
func reorderByRelevance(entries []string, keywords []string) []string {
	if len(entries) == 0 {
		return entries
	}
	type scored struct {
		entry string
		score int
	}
	items := make([]scored, len(entries))
	for i, e := range entries {
		items[i] = scored{entry: e, score: skillScore(e, keywords)}
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].score > items[b].score })

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.entry
	}
	return out
}

func skillScore(entry string, keywords []string) int {
	lower := strings.ToLower(strings.TrimSpace(entry))
	score := 0
	for _, kw := range keywords {
		switch {
		case lower == kw:
			score += 10
		case strings.Contains(lower, kw) || strings.Contains(kw, lower):
			score += 5
		}
	}
	return score
}

func missingTech(skills types.Skills, topKeywords []string) []string {
	var entries []string
	for _, list := range [][]string{skills.Technical, skills.Tools, skills.Languages} {
		for _, e := range list {
			entries = append(entries, strings.ToLower(strings.TrimSpace(e)))
		}
	}
	listed := func(kw string) bool {
		for _, e := range entries {
			if strings.Contains(e, kw) {
				return true
			}
		}
		return false
	}
	var out []string
	for _, kw := range topKeywords {
		if !techIndicators[kw] || listed(kw) {
			continue
		}
		out = append(out, titleCase(kw))
		entries = append(entries, kw)
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s == "aws" {
		return "AWS"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
