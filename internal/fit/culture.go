package fit

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

var workStyleTerms = map[string][]string{
	"remote":        {"remote", "distributed team", "work from home"},
	"collaborative": {"collaborat", "cross-functional", "pair"},
	"autonomous":    {"self-starter", "autonomous", "ownership"},
	"fast-paced":    {"fast-paced", "startup pace", "rapid"},
	"on-call":       {"on-call", "incident", "pager"},
}

var valueTerms = map[string][]string{
	"reliability": {"reliability", "uptime", "sla"},
	"quality":     {"quality", "craftsmanship", "best practices"},
	"learning":    {"learning", "growth", "mentorship"},
	"customer":    {"customer", "user-focused", "client"},
}

var companySizeTerms = map[string][]string{
	"startup":    {"startup", "early-stage", "seed"},
	"midsize":    {"scale-up", "growing company", "series"},
	"enterprise": {"enterprise", "fortune", "global company"},
}

// AnalyzeCulture derives coarse culture signals by comparing what the
// posting emphasizes with what the resume demonstrates.
func AnalyzeCulture(resume *types.Resume, req types.JobRequirements, jobText string) types.CultureIndicators {
	posting := strings.ToLower(jobText)
	candidate := strings.ToLower(resumeBlob(resume))

	var indicators types.CultureIndicators
	for style, terms := range workStyleTerms {
		if containsAny(posting, terms) && containsAny(candidate, terms) {
			indicators.WorkStyles = append(indicators.WorkStyles, style)
		}
	}
	for value, terms := range valueTerms {
		if containsAny(posting, terms) && containsAny(candidate, terms) {
			indicators.Values = append(indicators.Values, value)
		}
	}
	sort.Strings(indicators.WorkStyles)
	sort.Strings(indicators.Values)

	indicators.CompanySizeMatch = sizeMatch(posting, candidate, req.CompanySize)
	indicators.IndustryMatch = industryMatch(candidate, req.Industry)
	return indicators
}

func sizeMatch(posting, candidate, declared string) bool {
	size := strings.ToLower(declared)
	if size == "" {
		for name, terms := range companySizeTerms {
			if containsAny(posting, terms) {
				size = name
				break
			}
		}
	}
	if size == "" {
		// Nothing declared or implied, treat as compatible.
		return true
	}
	terms, ok := companySizeTerms[size]
	if !ok {
		return true
	}
	return containsAny(candidate, terms)
}

func industryMatch(candidate, industry string) bool {
	if industry == "" {
		return true
	}
	return strings.Contains(candidate, strings.ToLower(industry))
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func resumeBlob(resume *types.Resume) string {
	var parts []string
	parts = append(parts, resume.Summary)
	for _, exp := range resume.Experience {
		parts = append(parts, roleText(exp))
	}
	parts = append(parts, resume.Skills.Technical...)
	parts = append(parts, resume.Skills.Tools...)
	return strings.Join(parts, "\n")
}
