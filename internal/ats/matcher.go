package ats

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/textutil"
	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultFuzzyThreshold is the minimum similarity for a fuzzy word match.
const DefaultFuzzyThreshold = 0.85

var (
	actionVerbs = []string{
		"managed", "implemented", "developed", "created", "designed",
		"optimized", "improved", "configured", "automated", "deployed",
	}
	impactWords = []string{
		"increased", "reduced", "improved", "achieved", "delivered",
	}
)

// Matcher locates job keywords inside a resume, trying progressively looser
// strategies: exact, synonym, stemmed, then fuzzy.
type Matcher struct {
	fuzzyThreshold float64
}

// NewMatcher returns a matcher with the default fuzzy threshold.
func NewMatcher() *Matcher {
	return &Matcher{fuzzyThreshold: DefaultFuzzyThreshold}
}

// Match resolves every keyword against the resume. Keywords that cannot be
// found in any form come back as MatchMissing so callers see the full set.
func (m *Matcher) Match(resume *types.Resume, keywords []types.Keyword) []types.KeywordMatch {
	text := buildResumeText(resume)
	sections := buildSectionTexts(resume)
	tokens := textutil.Words(text)
	uniqueTokens := uniqueStrings(tokens)

	matches := make([]types.KeywordMatch, 0, len(keywords))
	for _, kw := range keywords {
		matches = append(matches, m.matchOne(kw, text, sections, tokens, uniqueTokens))
	}
	return matches
}

func (m *Matcher) matchOne(kw types.Keyword, text string, sections map[string]string, tokens, uniqueTokens []string) types.KeywordMatch {
	term := strings.ToLower(kw.Text)

	if match, ok := findTerm(term, text, sections); ok {
		match.Keyword = kw
		match.MatchType = types.MatchExact
		return match
	}

	for _, syn := range kw.Synonyms {
		if match, ok := findTerm(strings.ToLower(syn), text, sections); ok {
			match.Keyword = kw
			match.MatchType = types.MatchSynonym
			return match
		}
	}

	if !strings.Contains(term, " ") {
		if match, ok := findStemmed(term, tokens, sections); ok {
			match.Keyword = kw
			match.MatchType = types.MatchStemmed
			return match
		}
	}

	if best, score := textutil.BestWordMatch(term, uniqueTokens); score >= m.fuzzyThreshold {
		return types.KeywordMatch{
			Keyword:     kw,
			MatchType:   types.MatchPartial,
			MatchedText: best,
			Frequency:   textutil.CountOccurrences(text, best),
			Locations:   locateTerm(best, sections),
		}
	}

	return types.KeywordMatch{Keyword: kw, MatchType: types.MatchMissing}
}

// findTerm looks for a whole-word occurrence of term and, when found,
// returns its frequency, section locations, and context score.
func findTerm(term, text string, sections map[string]string) (types.KeywordMatch, bool) {
	pattern, err := wordPattern(term)
	if err != nil {
		return types.KeywordMatch{}, false
	}
	hits := pattern.FindAllStringIndex(text, -1)
	if len(hits) == 0 {
		return types.KeywordMatch{}, false
	}
	return types.KeywordMatch{
		MatchedText:  term,
		Frequency:    len(hits),
		Locations:    locateTerm(term, sections),
		ContextScore: contextScore(text, hits),
	}, true
}

// findStemmed compares the stem of a single-word term against every resume
// token and reports the most common surface form.
func findStemmed(term string, tokens []string, sections map[string]string) (types.KeywordMatch, bool) {
	target := textutil.Stem(term)
	counts := make(map[string]int)
	total := 0
	for _, tok := range tokens {
		if textutil.Stem(tok) == target {
			counts[tok]++
			total++
		}
	}
	if total == 0 {
		return types.KeywordMatch{}, false
	}
	var best string
	for form, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && form < best) {
			best = form
		}
	}
	return types.KeywordMatch{
		MatchedText: best,
		Frequency:   total,
		Locations:   locateTerm(best, sections),
	}, true
}

func locateTerm(term string, sections map[string]string) []string {
	pattern, err := wordPattern(term)
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range []string{"summary", "experience", "skills", "education"} {
		if pattern.MatchString(sections[name]) {
			out = append(out, name)
		}
	}
	return out
}

func wordPattern(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
}

// contextScore rewards occurrences surrounded by action verbs, numbers, and
// impact words within a 50 character window.
func contextScore(text string, hits [][]int) float64 {
	score := 0.0
	for _, hit := range hits {
		lo := hit[0] - 50
		if lo < 0 {
			lo = 0
		}
		hi := hit[1] + 50
		if hi > len(text) {
			hi = len(text)
		}
		window := text[lo:hi]
		for _, verb := range actionVerbs {
			if strings.Contains(window, verb) {
				score += 0.3
				break
			}
		}
		if textutil.HasNumber(window) {
			score += 0.3
		}
		for _, word := range impactWords {
			if strings.Contains(window, word) {
				score += 0.2
				break
			}
		}
		if score > 0.8 {
			score = 0.8
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// buildResumeText flattens the resume into one lowercase text blob.
func buildResumeText(resume *types.Resume) string {
	var parts []string
	add := func(values ...string) {
		for _, v := range values {
			if v != "" {
				parts = append(parts, v)
			}
		}
	}
	add(resume.Personal.Name, resume.Summary)
	for _, exp := range resume.Experience {
		add(exp.Title, exp.Company)
		for _, b := range exp.Bullets {
			add(b.Text)
		}
	}
	for _, edu := range resume.Education {
		add(edu.Degree, edu.Institution)
	}
	add(resume.Skills.Technical...)
	add(resume.Skills.Tools...)
	add(resume.Skills.Languages...)
	add(resume.Certifications...)
	return strings.ToLower(strings.Join(parts, "\n"))
}

func buildSectionTexts(resume *types.Resume) map[string]string {
	var experience []string
	for _, exp := range resume.Experience {
		experience = append(experience, exp.Title, exp.Company)
		for _, b := range exp.Bullets {
			experience = append(experience, b.Text)
		}
	}
	var education []string
	for _, edu := range resume.Education {
		education = append(education, edu.Degree, edu.Institution)
	}
	var skills []string
	skills = append(skills, resume.Skills.Technical...)
	skills = append(skills, resume.Skills.Tools...)
	skills = append(skills, resume.Skills.Languages...)
	skills = append(skills, resume.Certifications...)

	return map[string]string{
		"summary":    strings.ToLower(resume.Summary),
		"experience": strings.ToLower(strings.Join(experience, "\n")),
		"skills":     strings.ToLower(strings.Join(skills, "\n")),
		"education":  strings.ToLower(strings.Join(education, "\n")),
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
