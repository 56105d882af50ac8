// Package ats extracts keywords from job descriptions, matches them against
// parsed resumes, and produces screening scores in the 0-100 range used by
// applicant tracking systems.
package ats

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/textutil"
	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultTopKeywords bounds how many ranked keywords an extraction returns.
const DefaultTopKeywords = 50

// techPatterns map canonical technology names to the spellings postings use.
var techPatterns = map[string]*regexp.Regexp{
	"kafka":      regexp.MustCompile(`\b(?:kafka|apache\s+kafka|confluent)\b`),
	"kubernetes": regexp.MustCompile(`\bk8s\b|\bkubernetes\b`),
	"docker":     regexp.MustCompile(`\bdocker\b`),
	"python":     regexp.MustCompile(`\bpython\b`),
	"java":       regexp.MustCompile(`\bjava\b`),
	"aws":        regexp.MustCompile(`\baws\b|\bamazon\s+web\s+services\b`),
	"azure":      regexp.MustCompile(`\bazure\b`),
	"terraform":  regexp.MustCompile(`\bterraform\b`),
	"ansible":    regexp.MustCompile(`\bansible\b`),
	"jenkins":    regexp.MustCompile(`\bjenkins\b`),
	"git":        regexp.MustCompile(`\bgit\b`),
}

// synonyms map a canonical term to alternative spellings that count as the
// same skill during matching.
var synonyms = map[string][]string{
	"kafka":      {"apache kafka", "confluent kafka", "kafka streams"},
	"kubernetes": {"k8s", "container orchestration"},
	"ci/cd":      {"cicd", "continuous integration", "continuous deployment"},
	"monitoring": {"observability", "telemetry"},
	"scripting":  {"automation", "shell scripting"},
	"cloud":      {"aws", "azure", "gcp"},
}

// certificationTerms are scanned as literal substrings.
var certificationTerms = []string{
	"aws certified",
	"azure certified",
	"cka",
	"ckad",
	"confluent certified",
	"kafka certification",
	"terraform certified",
	"ansible certified",
}

var domainTerms = []string{
	"cluster management",
	"high availability",
	"disaster recovery",
	"performance tuning",
	"security",
	"monitoring",
	"replication",
	"partitioning",
	"throughput",
}

var softSkillTerms = []string{
	"communication",
	"leadership",
	"collaboration",
	"problem solving",
	"teamwork",
	"mentoring",
	"documentation",
}

var (
	techIndicators       = []string{"system", "cluster", "server", "data", "api", "infrastructure"}
	experienceIndicators = []string{"experience", "years", "background", "expertise"}
	emphasisPattern      = regexp.MustCompile(`\b(?:required|must|essential|critical|key)\b`)
)

// Extractor pulls ranked keywords out of job description text.
type Extractor struct {
	topN int
}

// NewExtractor returns an extractor keeping the top n keywords. n <= 0 uses
// DefaultTopKeywords.
func NewExtractor(n int) *Extractor {
	if n <= 0 {
		n = DefaultTopKeywords
	}
	return &Extractor{topN: n}
}

// Extract runs all extraction stages over the job description and returns
// deduplicated keywords ranked by category priority and importance.
func (e *Extractor) Extract(jobDescription string) []types.Keyword {
	text := strings.ToLower(jobDescription)

	var keywords []types.Keyword
	keywords = append(keywords, extractTechnical(text)...)
	keywords = append(keywords, extractFromSynonyms(text)...)
	keywords = append(keywords, extractCertifications(text)...)
	keywords = append(keywords, extractPhrases(text)...)
	keywords = append(keywords, extractDomainTerms(text)...)
	keywords = append(keywords, extractSoftSkills(text)...)

	return rank(dedupe(keywords), e.topN)
}

func extractTechnical(text string) []types.Keyword {
	names := make([]string, 0, len(techPatterns))
	for name := range techPatterns {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []types.Keyword
	for _, name := range names {
		freq := len(techPatterns[name].FindAllString(text, -1))
		if freq == 0 {
			continue
		}
		out = append(out, types.Keyword{
			Text:       name,
			Category:   types.CategoryTechnical,
			Importance: importance(text, name, freq),
			Frequency:  freq,
			Synonyms:   synonyms[name],
		})
	}
	return out
}

// extractFromSynonyms credits canonical terms that only appear under an
// alternative spelling, such as "observability" standing in for monitoring.
func extractFromSynonyms(text string) []types.Keyword {
	canonicals := make([]string, 0, len(synonyms))
	for canonical := range synonyms {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	var out []types.Keyword
	for _, canonical := range canonicals {
		alts := synonyms[canonical]
		if strings.Contains(text, canonical) {
			continue
		}
		for _, alt := range alts {
			freq := textutil.CountOccurrences(text, alt)
			if freq == 0 {
				continue
			}
			out = append(out, types.Keyword{
				Text:       canonical,
				Category:   types.CategoryTechnical,
				Importance: importance(text, alt, freq),
				Frequency:  freq,
				Synonyms:   alts,
			})
			break
		}
	}
	return out
}

func extractCertifications(text string) []types.Keyword {
	var out []types.Keyword
	for _, term := range certificationTerms {
		freq := textutil.CountOccurrences(text, term)
		if freq == 0 {
			continue
		}
		out = append(out, types.Keyword{
			Text:       titleCase(term),
			Category:   types.CategoryCertification,
			Importance: 0.9,
			Frequency:  freq,
		})
	}
	return out
}

// extractPhrases mines recurring 2-3 word phrases and classifies them by
// their indicator words.
func extractPhrases(text string) []types.Keyword {
	counts := make(map[string]int)
	for _, sentence := range textutil.Sentences(text) {
		words := textutil.ContentWords(sentence)
		for n := 2; n <= 3; n++ {
			for _, gram := range textutil.NGrams(words, n) {
				counts[gram]++
			}
		}
	}

	type phraseCount struct {
		phrase string
		count  int
	}
	ranked := make([]phraseCount, 0, len(counts))
	for p, c := range counts {
		ranked = append(ranked, phraseCount{p, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].phrase < ranked[j].phrase
	})
	if len(ranked) > 20 {
		ranked = ranked[:20]
	}

	var out []types.Keyword
	for _, pc := range ranked {
		if pc.count < 2 {
			continue
		}
		imp := float64(pc.count) / 5.0
		if imp > 1.0 {
			imp = 1.0
		}
		out = append(out, types.Keyword{
			Text:       pc.phrase,
			Category:   categorizePhrase(pc.phrase),
			Importance: imp,
			Frequency:  pc.count,
		})
	}
	return out
}

func categorizePhrase(phrase string) types.KeywordCategory {
	for _, ind := range techIndicators {
		if strings.Contains(phrase, ind) {
			return types.CategoryTechnical
		}
	}
	for _, ind := range experienceIndicators {
		if strings.Contains(phrase, ind) {
			return types.CategoryExperience
		}
	}
	return types.CategoryDomain
}

func extractDomainTerms(text string) []types.Keyword {
	var out []types.Keyword
	for _, term := range domainTerms {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		freq := len(pattern.FindAllString(text, -1))
		if freq == 0 {
			continue
		}
		out = append(out, types.Keyword{
			Text:       term,
			Category:   types.CategoryDomain,
			Importance: 0.8,
			Frequency:  freq,
		})
	}
	return out
}

func extractSoftSkills(text string) []types.Keyword {
	var out []types.Keyword
	for _, term := range softSkillTerms {
		freq := textutil.CountOccurrences(text, term)
		if freq == 0 {
			continue
		}
		out = append(out, types.Keyword{
			Text:       titleCase(term),
			Category:   types.CategorySoft,
			Importance: 0.5,
			Frequency:  freq,
		})
	}
	return out
}

// importance estimates how much the posting cares about a term. Terms named
// under requirements, early in the posting, or next to emphasis words score
// higher, as do repeats.
func importance(text, term string, freq int) float64 {
	score := 0.5

	requirementsPattern := regexp.MustCompile(`(?s)(?:requirements?|qualifications?).*?` + regexp.QuoteMeta(term))
	if requirementsPattern.MatchString(text) {
		score += 0.3
	}

	head := text
	if len(head) > 500 {
		head = head[:500]
	}
	if strings.Contains(head, term) {
		score += 0.2
	}

	emphasized := regexp.MustCompile(emphasisPattern.String() + `.{0,50}` + regexp.QuoteMeta(term))
	if emphasized.MatchString(text) {
		score += 0.2
	}

	freqBonus := float64(freq) * 0.1
	if freqBonus > 0.3 {
		freqBonus = 0.3
	}
	score += freqBonus

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// dedupe keeps one keyword per lowercase text, preferring the highest
// importance.
func dedupe(keywords []types.Keyword) []types.Keyword {
	best := make(map[string]types.Keyword)
	var order []string
	for _, kw := range keywords {
		key := strings.ToLower(kw.Text)
		existing, seen := best[key]
		if !seen {
			order = append(order, key)
			best[key] = kw
			continue
		}
		if kw.Importance > existing.Importance {
			best[key] = kw
		}
	}
	out := make([]types.Keyword, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

func rank(keywords []types.Keyword, topN int) []types.Keyword {
	sort.SliceStable(keywords, func(i, j int) bool {
		pi, pj := keywords[i].Category.Priority(), keywords[j].Category.Priority()
		if pi != pj {
			return pi > pj
		}
		if keywords[i].Importance != keywords[j].Importance {
			return keywords[i].Importance > keywords[j].Importance
		}
		return keywords[i].Text < keywords[j].Text
	})
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
