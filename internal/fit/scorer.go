package fit

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Component weights for the overall fit score.
const (
	weightSkills     = 0.35
	weightExperience = 0.30
	weightTrajectory = 0.15
	weightEducation  = 0.10
	weightCulture    = 0.10
)

// Scorer produces holistic job-fit assessments.
type Scorer struct {
	skills     *SkillMatcher
	experience *ExperienceEvaluator
}

// NewScorer wires the component analyzers.
func NewScorer() *Scorer {
	return &Scorer{
		skills:     NewSkillMatcher(),
		experience: NewExperienceEvaluator(),
	}
}

// Score assesses the candidate against the role requirements. jobText is
// the raw posting, used for culture signals.
func (s *Scorer) Score(resume *types.Resume, req types.JobRequirements, jobText string) *types.JobFitScore {
	matches := s.skills.MatchSkills(resume, req.Skills)
	gaps := AnalyzeGaps(matches)
	expMatches := s.experience.Evaluate(resume, req)
	trajectory := AnalyzeTrajectory(resume.Experience)
	culture := AnalyzeCulture(resume, req, jobText)

	score := &types.JobFitScore{
		SkillsFit:     skillsFit(matches, gaps),
		ExperienceFit: s.experience.Fit(expMatches, req),
		TrajectoryFit: TrajectoryFit(trajectory),
		EducationFit:  educationFit(resume, req),
		CultureFit:    culture.FitScore() * 100,
		SkillMatches:  matches,
		Gaps:          gaps,
		Experience:    expMatches,
		Trajectory:    trajectory,
		Culture:       culture,
		JobTitle:      req.Title,
		ScoredAt:      time.Now().UTC(),
	}
	score.Overall = math.Round((score.SkillsFit*weightSkills+
		score.ExperienceFit*weightExperience+
		score.TrajectoryFit*weightTrajectory+
		score.EducationFit*weightEducation+
		score.CultureFit*weightCulture)*100) / 100
	score.Strengths = strengths(score, resume)
	return score
}

// skillsFit averages match strength and subtracts a small penalty per
// critical gap.
func skillsFit(matches []types.SkillMatch, gaps []types.SkillGap) float64 {
	if len(matches) == 0 {
		return 0
	}
	var total float64
	for _, m := range matches {
		total += m.Strength
	}
	score := total / float64(len(matches)) * 100
	for _, g := range gaps {
		if g.Severity == "critical" {
			score -= 2
		}
	}
	return clamp(score, 0, 100)
}

func educationFit(resume *types.Resume, req types.JobRequirements) float64 {
	if len(resume.Education) == 0 {
		return 50
	}
	score := 50.0

	if req.DegreeRequired != "" {
		if hasDegree(resume, req.DegreeRequired) {
			score += 30
		}
	} else {
		score += 20
	}

	switch {
	case matchesCertification(resume, req.Certifications):
		score += 20
	case len(resume.Certifications) > 0 || len(resume.Skills.Certifications) > 0:
		score += 10
	}
	return clamp(score, 0, 100)
}

func hasDegree(resume *types.Resume, required string) bool {
	required = strings.ToLower(required)
	for _, edu := range resume.Education {
		degree := strings.ToLower(edu.Degree)
		if strings.Contains(degree, required) {
			return true
		}
		// A bachelor's requirement is satisfied by any higher degree.
		if strings.Contains(required, "bachelor") &&
			(strings.Contains(degree, "master") || strings.Contains(degree, "phd") || strings.Contains(degree, "b.s")) {
			return true
		}
	}
	return false
}

func matchesCertification(resume *types.Resume, required []string) bool {
	if len(required) == 0 {
		return false
	}
	var held []string
	held = append(held, resume.Certifications...)
	held = append(held, resume.Skills.Certifications...)
	for _, want := range required {
		for _, have := range held {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}

func strengths(score *types.JobFitScore, resume *types.Resume) []string {
	var out []string
	if score.SkillsFit >= 80 {
		out = append(out, "skill set closely matches the role requirements")
	}
	for _, m := range score.SkillMatches {
		if m.Skill.Required && m.CandidateLevel >= types.SkillAdvanced {
			out = append(out, fmt.Sprintf("advanced %s experience with direct evidence", m.Skill.Name))
		}
	}
	if score.Trajectory.Direction == "upward" {
		out = append(out, "career shows consistent upward progression")
	}
	if len(score.Trajectory.Specializations) > 0 {
		out = append(out, "specialized in "+strings.Join(score.Trajectory.Specializations, ", "))
	}
	if len(resume.Experience) > 0 && resume.Experience[0].Current {
		out = append(out, "currently active in a related role")
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
