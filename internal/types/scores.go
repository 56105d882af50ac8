package types

import "time"

// SectionScore is the keyword coverage breakdown for one resume section.
type SectionScore struct {
	SectionName   string   `json:"section_name"`
	KeywordsFound int      `json:"keywords_found"`
	KeywordsTotal int      `json:"keywords_total"`
	Density       float64  `json:"density"`
	QualityScore  float64  `json:"quality_score"`
	WordCount     int      `json:"word_count"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

// MatchRate returns the fraction of tracked keywords found in the section.
func (s SectionScore) MatchRate() float64 {
	if s.KeywordsTotal == 0 {
		return 0
	}
	return float64(s.KeywordsFound) / float64(s.KeywordsTotal)
}

// Recommendations groups scorer advice by urgency.
type Recommendations struct {
	Critical     []string `json:"critical,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Enhancements []string `json:"enhancements,omitempty"`
}

// ATSScore is the full result of scoring a resume against a job description.
// Component scores are 0-100; Overall is their weighted combination.
type ATSScore struct {
	Overall         float64 `json:"overall_score"`
	KeywordScore    float64 `json:"keyword_score"`
	ExperienceScore float64 `json:"experience_score"`
	SkillsScore     float64 `json:"skills_score"`
	EducationScore  float64 `json:"education_score"`
	FormatScore     float64 `json:"format_score"`

	Matches         []KeywordMatch          `json:"matches"`
	MissingKeywords []Keyword               `json:"missing_keywords"`
	SectionScores   map[string]SectionScore `json:"section_scores"`
	Recommendations Recommendations         `json:"recommendations"`

	JobTitle string    `json:"job_title,omitempty"`
	Company  string    `json:"company,omitempty"`
	ScoredAt time.Time `json:"scored_at"`
}

// Grade maps the overall score onto a letter grade.
func (s ATSScore) Grade() string {
	switch {
	case s.Overall >= 90:
		return "A+"
	case s.Overall >= 85:
		return "A"
	case s.Overall >= 80:
		return "A-"
	case s.Overall >= 75:
		return "B+"
	case s.Overall >= 70:
		return "B"
	case s.Overall >= 65:
		return "B-"
	case s.Overall >= 60:
		return "C+"
	case s.Overall >= 55:
		return "C"
	default:
		return "F"
	}
}

// PassesScreening reports whether the score clears the typical automated
// screening threshold.
func (s ATSScore) PassesScreening() bool {
	return s.Overall >= 65
}

// MatchedCount returns the number of keywords with any non-missing match.
func (s ATSScore) MatchedCount() int {
	n := 0
	for _, m := range s.Matches {
		if m.MatchType != MatchMissing {
			n++
		}
	}
	return n
}
