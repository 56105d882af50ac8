package fit

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// learnEstimates is a static ladder of how long closing a one-step level gap
// typically takes, keyed by current then target level.
var learnEstimates = map[types.SkillLevel]map[types.SkillLevel]string{
	types.SkillNone: {
		types.SkillBeginner:     "1-3 months",
		types.SkillIntermediate: "6-12 months",
		types.SkillAdvanced:     "1-2 years",
		types.SkillExpert:       "3+ years",
	},
	types.SkillBeginner: {
		types.SkillIntermediate: "3-6 months",
		types.SkillAdvanced:     "1-2 years",
		types.SkillExpert:       "2-3 years",
	},
	types.SkillIntermediate: {
		types.SkillAdvanced: "6-12 months",
		types.SkillExpert:   "1-2 years",
	},
	types.SkillAdvanced: {
		types.SkillExpert: "1-2 years",
	},
}

// hardToSelfLearn names skills that realistically need work experience
// rather than self-study when starting from nothing.
var hardToSelfLearn = []string{"architecture", "system design", "leadership"}

// AnalyzeGaps turns under-level skill matches into gap records with
// severity and a learning estimate.
func AnalyzeGaps(matches []types.SkillMatch) []types.SkillGap {
	var out []types.SkillGap
	for _, m := range matches {
		required := m.Skill.Level
		if required == types.SkillNone {
			required = types.SkillIntermediate
		}
		if m.CandidateLevel >= required {
			continue
		}
		estimate := "6-12 months"
		if byTarget, ok := learnEstimates[m.CandidateLevel]; ok {
			if e, ok := byTarget[required]; ok {
				estimate = e
			}
		}
		out = append(out, types.SkillGap{
			Skill:         m.Skill,
			CurrentLevel:  m.CandidateLevel,
			Severity:      severity(m.Skill, estimate),
			LearnEstimate: estimate,
			CanSelfLearn:  canSelfLearn(m.Skill.Name, m.CandidateLevel),
		})
	}
	return out
}

func severity(skill types.RequiredSkill, estimate string) string {
	switch {
	case skill.Required && strings.Contains(estimate, "year"):
		return "critical"
	case skill.Required:
		return "moderate"
	default:
		return "minor"
	}
}

func canSelfLearn(name string, current types.SkillLevel) bool {
	if current != types.SkillNone {
		return true
	}
	lower := strings.ToLower(name)
	for _, hard := range hardToSelfLearn {
		if strings.Contains(lower, hard) {
			return false
		}
	}
	return true
}
