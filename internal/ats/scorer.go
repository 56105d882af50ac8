package ats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/textutil"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Component weights for the overall score.
const (
	weightKeywords   = 0.40
	weightExperience = 0.20
	weightSkills     = 0.20
	weightEducation  = 0.10
	weightFormat     = 0.10
)

var degreeFields = []string{
	"computer", "software", "information technology", "engineering", "science",
}

// Scorer produces ATS screening scores for a resume against a posting.
type Scorer struct {
	extractor *Extractor
	matcher   *Matcher
}

// NewScorer wires an extractor and matcher with default settings.
func NewScorer() *Scorer {
	return &Scorer{
		extractor: NewExtractor(DefaultTopKeywords),
		matcher:   NewMatcher(),
	}
}

// Score extracts keywords from the job description and scores the resume
// against them.
func (s *Scorer) Score(resume *types.Resume, jobDescription, jobTitle, company string) *types.ATSScore {
	keywords := s.extractor.Extract(jobDescription)
	posting := ParseJobDescription(jobDescription)
	if jobTitle != "" {
		posting.Title = jobTitle
	}
	return s.ScoreAgainst(resume, keywords, posting, company)
}

// ScoreAgainst scores the resume against pre-extracted keywords. The
// pipeline uses this to avoid re-extracting per variant.
func (s *Scorer) ScoreAgainst(resume *types.Resume, keywords []types.Keyword, posting types.JobPosting, company string) *types.ATSScore {
	matches := s.matcher.Match(resume, keywords)

	var missing []types.Keyword
	for _, m := range matches {
		if m.MatchType == types.MatchMissing {
			missing = append(missing, m.Keyword)
		}
	}

	score := &types.ATSScore{
		KeywordScore:    keywordScore(matches, missing),
		ExperienceScore: experienceScore(resume, posting),
		SkillsScore:     skillsScore(resume, keywords, matches),
		EducationScore:  educationScore(resume),
		FormatScore:     formatScore(resume),
		Matches:         matches,
		MissingKeywords: missing,
		SectionScores:   sectionScores(resume, keywords, matches),
		JobTitle:        posting.Title,
		Company:         company,
		ScoredAt:        time.Now().UTC(),
	}
	score.Overall = round2(score.KeywordScore*weightKeywords +
		score.ExperienceScore*weightExperience +
		score.SkillsScore*weightSkills +
		score.EducationScore*weightEducation +
		score.FormatScore*weightFormat)
	score.Recommendations = recommendations(resume, matches, missing)
	return score
}

// keywordScore is the importance-weighted average of match credit, with a
// flat penalty for each missing high-importance keyword.
func keywordScore(matches []types.KeywordMatch, missing []types.Keyword) float64 {
	var got, total float64
	for _, m := range matches {
		got += m.Score() * m.Keyword.Importance
		total += m.Keyword.Importance
	}
	if total == 0 {
		return 0
	}
	score := got / total * 100

	for _, kw := range missing {
		if kw.Importance >= 0.8 {
			score -= 5
		}
	}
	return clamp(score, 0, 100)
}

func experienceScore(resume *types.Resume, posting types.JobPosting) float64 {
	score := 0.0
	roleCount := len(resume.Experience)

	// Years of experience, approximated by one role per year floor.
	if posting.ExperienceYears > 0 {
		ratio := float64(roleCount) / float64(posting.ExperienceYears)
		score += math.Min(40, ratio*40)
	} else if roleCount > 0 {
		score += 30
	}

	// Title relevance against the posting title.
	titleWords := contentTitleWords(posting.Title)
	if len(titleWords) == 0 {
		score += 15
	} else {
		for _, exp := range resume.Experience {
			lower := strings.ToLower(exp.Title)
			overlap := 0
			for _, w := range titleWords {
				if strings.Contains(lower, w) {
					overlap++
				}
			}
			if overlap > 0 {
				score += math.Min(30, float64(overlap)*10)
				break
			}
		}
	}

	// Recency of the most recent role.
	if roleCount > 0 {
		if resume.Experience[0].Current {
			score += 15
		} else {
			score += 10
		}
	}

	// Breadth of history.
	switch {
	case roleCount >= 2:
		score += 15
	case roleCount == 1:
		score += 10
	}
	return clamp(score, 0, 100)
}

func skillsScore(resume *types.Resume, keywords []types.Keyword, matches []types.KeywordMatch) float64 {
	matched := make(map[string]bool)
	certMatched := false
	for _, m := range matches {
		if m.MatchType == types.MatchMissing {
			continue
		}
		matched[strings.ToLower(m.Keyword.Text)] = true
		if m.Keyword.Category == types.CategoryCertification {
			certMatched = true
		}
	}

	var techTotal, techFound, toolTotal, toolFound int
	for _, kw := range keywords {
		switch kw.Category {
		case types.CategoryTechnical:
			techTotal++
			if matched[strings.ToLower(kw.Text)] {
				techFound++
			}
		case types.CategoryTool, types.CategoryDomain:
			toolTotal++
			if matched[strings.ToLower(kw.Text)] {
				toolFound++
			}
		}
	}

	score := 0.0
	if techTotal > 0 {
		score += float64(techFound) / float64(techTotal) * 50
	}
	if toolTotal > 0 {
		score += float64(toolFound) / float64(toolTotal) * 25
	}

	switch {
	case certMatched:
		score += 15
	case len(resume.Certifications) > 0 || len(resume.Skills.Certifications) > 0:
		score += 10
	}

	switch total := resume.Skills.Total(); {
	case total >= 15:
		score += 10
	case total >= 10:
		score += 7
	case total >= 5:
		score += 5
	}
	return clamp(score, 0, 100)
}

func educationScore(resume *types.Resume) float64 {
	if len(resume.Education) == 0 {
		return 30
	}
	score := 50.0
	best := 0.0
	relevant := false
	for _, edu := range resume.Education {
		degree := strings.ToLower(edu.Degree)
		level := 0.0
		switch {
		case strings.Contains(degree, "phd"), strings.Contains(degree, "doctor"):
			level = 30
		case strings.Contains(degree, "master"), strings.Contains(degree, "m.s"), strings.Contains(degree, "mba"):
			level = 25
		case strings.Contains(degree, "bachelor"), strings.Contains(degree, "b.s"), strings.Contains(degree, "b.a"):
			level = 20
		case strings.Contains(degree, "diploma"), strings.Contains(degree, "associate"):
			level = 15
		}
		best = math.Max(best, level)
		for _, field := range degreeFields {
			if strings.Contains(degree, field) {
				relevant = true
				break
			}
		}
	}
	score += best
	if relevant {
		score += 20
	}
	return clamp(score, 0, 100)
}

func formatScore(resume *types.Resume) float64 {
	score := 20.0

	sections := 0
	if resume.Personal.Name != "" {
		sections++
	}
	if resume.Personal.Email != "" {
		sections++
	}
	if len(resume.Experience) > 0 {
		sections++
	}
	if len(resume.Education) > 0 {
		sections++
	}
	if resume.Skills.Total() > 0 {
		sections++
	}
	score += float64(sections) / 5 * 40

	switch n := len(resume.AllBullets); {
	case n >= 10 && n <= 25:
		score += 20
	case (n >= 5 && n <= 9) || (n >= 26 && n <= 30):
		score += 15
	default:
		score += 10
	}

	for _, present := range []bool{
		resume.Personal.Email != "",
		resume.Personal.Phone != "",
		resume.Personal.LinkedIn != "",
		resume.Personal.GitHub != "",
	} {
		if present {
			score += 5
		}
	}
	return clamp(score, 0, 100)
}

func sectionScores(resume *types.Resume, keywords []types.Keyword, matches []types.KeywordMatch) map[string]types.SectionScore {
	sectionTexts := buildSectionTexts(resume)

	trackedTotal := 0
	for _, kw := range keywords {
		switch kw.Category {
		case types.CategoryTechnical, types.CategoryDomain, types.CategoryTool:
			trackedTotal++
		}
	}

	out := make(map[string]types.SectionScore, len(sectionTexts))
	for name, text := range sectionTexts {
		var found int
		var quality float64
		for _, m := range matches {
			if m.MatchType == types.MatchMissing {
				continue
			}
			for _, loc := range m.Locations {
				if loc == name {
					found++
					quality += m.Score()
					break
				}
			}
		}
		words := len(textutil.Words(text))
		sec := types.SectionScore{
			SectionName:   name,
			KeywordsFound: found,
			KeywordsTotal: trackedTotal,
			WordCount:     words,
		}
		if words > 0 {
			sec.Density = float64(found) / float64(words) * 100
		}
		if found > 0 {
			sec.QualityScore = quality / float64(found) * 100
		}
		if trackedTotal > 0 && sec.MatchRate() < 0.3 {
			sec.Suggestions = append(sec.Suggestions,
				fmt.Sprintf("Work more job keywords into the %s section", name))
		}
		if (name == "experience" || name == "skills") && sec.Density < 2 && words > 0 {
			sec.Suggestions = append(sec.Suggestions,
				fmt.Sprintf("Keyword density in %s is low", name))
		}
		out[name] = sec
	}
	return out
}

func recommendations(resume *types.Resume, matches []types.KeywordMatch, missing []types.Keyword) types.Recommendations {
	var recs types.Recommendations

	count := 0
	for _, kw := range missing {
		if kw.Importance >= 0.8 && count < 5 {
			recs.Critical = append(recs.Critical, fmt.Sprintf(
				"Add '%s' - appears %d times in job description", kw.Text, int(kw.Importance*10)))
			count++
		}
	}

	count = 0
	for _, m := range matches {
		if count >= 5 {
			break
		}
		if (m.MatchType == types.MatchPartial || m.MatchType == types.MatchStemmed) && m.Keyword.Importance >= 0.6 {
			recs.Improvements = append(recs.Improvements, fmt.Sprintf(
				"Strengthen '%s' - currently matched as '%s'", m.Keyword.Text, m.MatchedText))
			count++
		}
	}
	count = 0
	for _, m := range matches {
		if count >= 3 {
			break
		}
		if (m.MatchType == types.MatchExact || m.MatchType == types.MatchSynonym) &&
			m.Frequency == 1 && m.Keyword.Importance >= 0.7 {
			recs.Improvements = append(recs.Improvements, fmt.Sprintf(
				"Use '%s' more frequently - it appears only once", m.Keyword.Text))
			count++
		}
	}

	count = 0
	for _, kw := range missing {
		if kw.Importance >= 0.4 && kw.Importance < 0.6 && count < 5 {
			recs.Enhancements = append(recs.Enhancements, fmt.Sprintf(
				"Consider adding '%s'", kw.Text))
			count++
		}
	}

	if resume.Summary == "" {
		recs.Improvements = append(recs.Improvements,
			"Add a professional summary section targeting the role")
	}
	if len(resume.AllBullets) < 10 {
		recs.Improvements = append(recs.Improvements,
			"Add more achievement bullets; strong resumes carry 10 or more")
	}
	if len(resume.Certifications) == 0 && len(resume.Skills.Certifications) == 0 {
		recs.Enhancements = append(recs.Enhancements,
			"List relevant certifications if you hold any")
	}
	return recs
}

func contentTitleWords(title string) []string {
	var out []string
	for _, w := range textutil.Words(title) {
		if len(w) > 2 && !textutil.IsStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
