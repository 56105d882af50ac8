package types

// KeywordCategory classifies an extracted keyword by what it describes.
type KeywordCategory string

const (
	CategoryTechnical     KeywordCategory = "technical"
	CategorySoft          KeywordCategory = "soft"
	CategoryDomain        KeywordCategory = "domain"
	CategoryCertification KeywordCategory = "certification"
	CategoryTool          KeywordCategory = "tool"
	CategoryExperience    KeywordCategory = "experience"
	CategoryRequired      KeywordCategory = "required"
)

// Priority returns the ranking weight of the category. Higher sorts first.
func (c KeywordCategory) Priority() int {
	switch c {
	case CategoryRequired:
		return 5
	case CategoryTechnical, CategoryCertification:
		return 4
	case CategoryDomain, CategoryTool:
		return 3
	case CategoryExperience:
		return 2
	case CategorySoft:
		return 1
	default:
		return 0
	}
}

// Keyword is a term extracted from a job description together with how much
// the posting appears to care about it.
type Keyword struct {
	Text       string          `json:"text"`
	Category   KeywordCategory `json:"category"`
	Importance float64         `json:"importance"`
	Frequency  int             `json:"frequency"`
	Context    string          `json:"context,omitempty"`
	Synonyms   []string        `json:"synonyms,omitempty"`
}

// MatchType describes how a job keyword was found in a resume.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchSynonym MatchType = "synonym"
	MatchStemmed MatchType = "stemmed"
	MatchPartial MatchType = "partial"
	MatchMissing MatchType = "missing"
)

// baseScore is the credit a match type earns before frequency and context
// adjustments.
func (m MatchType) baseScore() float64 {
	switch m {
	case MatchExact:
		return 1.0
	case MatchSynonym:
		return 0.9
	case MatchStemmed:
		return 0.8
	case MatchPartial:
		return 0.6
	default:
		return 0.0
	}
}

// KeywordMatch records where and how a single job keyword matched the resume.
type KeywordMatch struct {
	Keyword      Keyword   `json:"keyword"`
	MatchType    MatchType `json:"match_type"`
	MatchedText  string    `json:"matched_text,omitempty"`
	Frequency    int       `json:"frequency"`
	Locations    []string  `json:"locations,omitempty"`
	ContextScore float64   `json:"context_score"`
}

// Score converts the match into [0,1] credit. Repeat occurrences add up to
// 30% and strong surrounding context up to 20% on top of the base score.
func (m KeywordMatch) Score() float64 {
	base := m.MatchType.baseScore()
	if base == 0 {
		return 0
	}
	freqBonus := 1.0 + float64(m.Frequency-1)*0.1
	if freqBonus > 1.3 {
		freqBonus = 1.3
	}
	score := base*freqBonus + m.ContextScore*0.2
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// JobPosting is a structured job description.
type JobPosting struct {
	Title            string   `json:"title"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	NiceToHave       []string `json:"nice_to_have,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`
	ExperienceYears  int      `json:"experience_years,omitempty"`
	RawText          string   `json:"raw_text"`
}
