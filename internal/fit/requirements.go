package fit

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// RequirementsFromPosting derives structured role requirements from a parsed
// posting and its extracted keywords, so fit scoring can run without a
// separately authored requirements file.
func RequirementsFromPosting(posting types.JobPosting, keywords []types.Keyword) types.JobRequirements {
	req := types.JobRequirements{
		Title:    posting.Title,
		MinYears: posting.ExperienceYears,
	}

	level := types.SkillIntermediate
	if posting.ExperienceYears >= 5 {
		level = types.SkillAdvanced
	}

	seen := make(map[string]bool)
	for _, kw := range keywords {
		name := strings.ToLower(kw.Text)
		switch kw.Category {
		case types.CategoryTechnical:
			if !seen[name] {
				seen[name] = true
				req.Skills = append(req.Skills, types.RequiredSkill{
					Name:     kw.Text,
					Level:    level,
					Required: kw.Importance >= 0.8,
				})
			}
		case types.CategoryDomain:
			req.DomainKeywords = append(req.DomainKeywords, kw.Text)
		case types.CategoryCertification:
			req.Certifications = append(req.Certifications, kw.Text)
		}
	}

	lower := strings.ToLower(posting.RawText)
	switch {
	case strings.Contains(lower, "master's degree"), strings.Contains(lower, "masters degree"):
		req.DegreeRequired = "master"
	case strings.Contains(lower, "bachelor"):
		req.DegreeRequired = "bachelor"
	}
	return req
}
