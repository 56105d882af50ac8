package types

import "time"

// SkillLevel is a coarse proficiency scale used when comparing candidate
// skills against posted requirements.
type SkillLevel int

const (
	SkillNone SkillLevel = iota
	SkillBeginner
	SkillIntermediate
	SkillAdvanced
	SkillExpert
)

// String returns the lowercase label for the level.
func (l SkillLevel) String() string {
	switch l {
	case SkillBeginner:
		return "beginner"
	case SkillIntermediate:
		return "intermediate"
	case SkillAdvanced:
		return "advanced"
	case SkillExpert:
		return "expert"
	default:
		return "none"
	}
}

// RequiredSkill is a skill the posting asks for.
type RequiredSkill struct {
	Name     string     `json:"name"`
	Level    SkillLevel `json:"level"`
	Required bool       `json:"required"`
}

// SkillMatch pairs a required skill with the candidate's evidence for it.
type SkillMatch struct {
	Skill          RequiredSkill `json:"skill"`
	CandidateLevel SkillLevel    `json:"candidate_level"`
	Evidence       []string      `json:"evidence,omitempty"`
	Strength       float64       `json:"strength"`
}

// SkillGap describes a required skill the candidate lacks or holds at too
// low a level, with a rough estimate of how long it takes to close.
type SkillGap struct {
	Skill         RequiredSkill `json:"skill"`
	CurrentLevel  SkillLevel    `json:"current_level"`
	Severity      string        `json:"severity"`
	LearnEstimate string        `json:"learn_estimate"`
	CanSelfLearn  bool          `json:"can_self_learn"`
}

// ExperienceMatch scores one resume role against the posting.
type ExperienceMatch struct {
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Relevance      float64 `json:"relevance"`
	Recency        float64 `json:"recency"`
	DurationMonths int     `json:"duration_months"`
}

// CareerTrajectory summarizes direction and pace across the work history.
type CareerTrajectory struct {
	Direction       string   `json:"direction"`
	CurrentLevel    string   `json:"current_level"`
	Promotions      int      `json:"promotions"`
	AvgTenureMonths float64  `json:"avg_tenure_months"`
	Specializations []string `json:"specializations,omitempty"`
}

// CultureIndicators carries the coarse culture-fit signals inferred from
// the posting text and the candidate's background.
type CultureIndicators struct {
	CompanySizeMatch bool     `json:"company_size_match"`
	IndustryMatch    bool     `json:"industry_match"`
	WorkStyles       []string `json:"work_styles,omitempty"`
	Values           []string `json:"values,omitempty"`
}

// FitScore collapses the indicators into a [0,1] value. Size and industry
// carry most of the weight; styles and values top it off.
func (c CultureIndicators) FitScore() float64 {
	score := 0.0
	if c.CompanySizeMatch {
		score += 0.3
	}
	if c.IndustryMatch {
		score += 0.3
	}
	if len(c.WorkStyles) > 0 {
		score += 0.2
	}
	if len(c.Values) > 0 {
		score += 0.2
	}
	return score
}

// JobRequirements is the fit-scoring view of a posting.
type JobRequirements struct {
	Title          string          `json:"title"`
	Skills         []RequiredSkill `json:"skills"`
	MinYears       int             `json:"min_years"`
	DegreeRequired string          `json:"degree_required,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	DomainKeywords []string        `json:"domain_keywords,omitempty"`
	TitleKeywords  []string        `json:"title_keywords,omitempty"`
	CompanySize    string          `json:"company_size,omitempty"`
	Industry       string          `json:"industry,omitempty"`
}

// JobFitScore is the holistic candidate-to-role assessment, complementary to
// the keyword-driven ATS score.
type JobFitScore struct {
	Overall       float64 `json:"overall_score"`
	SkillsFit     float64 `json:"skills_fit"`
	ExperienceFit float64 `json:"experience_fit"`
	TrajectoryFit float64 `json:"trajectory_fit"`
	EducationFit  float64 `json:"education_fit"`
	CultureFit    float64 `json:"culture_fit"`

	SkillMatches []SkillMatch      `json:"skill_matches"`
	Gaps         []SkillGap        `json:"gaps,omitempty"`
	Experience   []ExperienceMatch `json:"experience_matches,omitempty"`
	Trajectory   CareerTrajectory  `json:"trajectory"`
	Culture      CultureIndicators `json:"culture_indicators"`
	Strengths    []string          `json:"strengths,omitempty"`

	JobTitle string    `json:"job_title,omitempty"`
	ScoredAt time.Time `json:"scored_at"`
}

// FitLevel maps the overall score onto a label.
func (s JobFitScore) FitLevel() string {
	switch {
	case s.Overall >= 90:
		return "excellent"
	case s.Overall >= 80:
		return "strong"
	case s.Overall >= 70:
		return "good"
	case s.Overall >= 60:
		return "moderate"
	case s.Overall >= 50:
		return "weak"
	default:
		return "poor"
	}
}

// HireRecommendation returns a short verdict for the report header.
func (s JobFitScore) HireRecommendation() string {
	switch {
	case s.Overall >= 85:
		return "strong match, apply with confidence"
	case s.Overall >= 75:
		return "good match, tailor the resume and apply"
	case s.Overall >= 65:
		return "possible match, address the gaps first"
	case s.Overall >= 55:
		return "stretch role, expect a tough screen"
	default:
		return "weak match, consider other roles"
	}
}

// CriticalGaps returns the gaps marked critical.
func (s JobFitScore) CriticalGaps() []SkillGap {
	var out []SkillGap
	for _, g := range s.Gaps {
		if g.Severity == "critical" {
			out = append(out, g)
		}
	}
	return out
}
