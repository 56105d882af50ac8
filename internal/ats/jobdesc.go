package ats

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

var (
	responsibilitiesHeader = regexp.MustCompile(`(?i)^(?:key\s+)?(?:responsibilities|duties|what\s+you.?ll\s+do|about\s+the\s+role)\b`)
	requirementsHeader     = regexp.MustCompile(`(?i)^(?:requirements|qualifications|what\s+you.?ll\s+need|must[\s-]+have|basic\s+qualifications|skills)\b`)
	niceToHaveHeader       = regexp.MustCompile(`(?i)^(?:nice[\s-]+to[\s-]+have|preferred|bonus|plus(?:es)?)\b`)
	benefitsHeader         = regexp.MustCompile(`(?i)^(?:benefits|perks|what\s+we\s+offer|compensation)\b`)

	yearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?experience`),
		regexp.MustCompile(`(?i)experience\s*(?:of|:)?\s*(\d+)\s*\+?\s*(?:years?|yrs?)`),
		regexp.MustCompile(`(?i)minimum\s+(?:of\s+)?(\d+)\s*(?:years?|yrs?)`),
	}

	bulletMarkerPattern = regexp.MustCompile(`^[\-\*•–]\s*`)

	titleKeywords = []string{
		"engineer", "developer", "administrator", "architect", "manager",
		"analyst", "specialist", "lead", "sre", "devops", "consultant",
	}
)

// ParseJobDescription splits raw posting text into titled sections, bullet
// lists, and an experience requirement. It is tolerant of loosely formatted
// postings; unrecognized content stays in the description body.
func ParseJobDescription(text string) types.JobPosting {
	posting := types.JobPosting{
		RawText:     text,
		Description: text,
		Title:       extractTitle(text),
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case responsibilitiesHeader.MatchString(line):
			current = "responsibilities"
			continue
		case requirementsHeader.MatchString(line):
			current = "requirements"
			continue
		case niceToHaveHeader.MatchString(line):
			current = "nice_to_have"
			continue
		case benefitsHeader.MatchString(line):
			current = "benefits"
			continue
		}
		item := bulletMarkerPattern.ReplaceAllString(line, "")
		if len(item) < 10 {
			continue
		}
		switch current {
		case "responsibilities":
			posting.Responsibilities = append(posting.Responsibilities, item)
		case "requirements":
			posting.Requirements = append(posting.Requirements, item)
		case "nice_to_have":
			posting.NiceToHave = append(posting.NiceToHave, item)
		case "benefits":
			posting.Benefits = append(posting.Benefits, item)
		}
	}

	for _, p := range yearsPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil {
				posting.ExperienceYears = years
				break
			}
		}
	}
	return posting
}

// extractTitle guesses the job title from the opening lines.
func extractTitle(text string) string {
	lines := strings.Split(text, "\n")
	var seen int
	var fallback string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 10 {
			break
		}
		if isSectionHeader(line) {
			continue
		}
		lower := strings.ToLower(line)
		if len(line) >= 10 && len(line) <= 100 {
			for _, kw := range titleKeywords {
				if strings.Contains(lower, kw) {
					return line
				}
			}
		}
		if fallback == "" && !strings.Contains(line, ":") && len(strings.Fields(line)) <= 8 {
			fallback = line
		}
	}
	if fallback != "" {
		return fallback
	}
	return "Unknown Position"
}

func isSectionHeader(line string) bool {
	return responsibilitiesHeader.MatchString(line) ||
		requirementsHeader.MatchString(line) ||
		niceToHaveHeader.MatchString(line) ||
		benefitsHeader.MatchString(line)
}
