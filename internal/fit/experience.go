package fit

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/types"
)

// seniorityWords are stripped before comparing titles so "Senior Platform
// Engineer" and "Platform Engineer" compare equal.
var seniorityWords = map[string]bool{
	"senior": true, "junior": true, "lead": true, "staff": true,
	"principal": true, "engineer": true, "developer": true,
	"sr": true, "jr": true,
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// ExperienceEvaluator scores work history entries against a role.
type ExperienceEvaluator struct {
	now time.Time
}

// NewExperienceEvaluator evaluates against the current date.
func NewExperienceEvaluator() *ExperienceEvaluator {
	return &ExperienceEvaluator{now: time.Now()}
}

// Evaluate scores each role's relevance, recency, and duration.
func (e *ExperienceEvaluator) Evaluate(resume *types.Resume, req types.JobRequirements) []types.ExperienceMatch {
	out := make([]types.ExperienceMatch, 0, len(resume.Experience))
	for _, exp := range resume.Experience {
		out = append(out, types.ExperienceMatch{
			Title:          exp.Title,
			Company:        exp.Company,
			Relevance:      e.relevance(exp, req),
			Recency:        e.recency(exp),
			DurationMonths: durationMonths(exp),
		})
	}
	return out
}

// Fit collapses the per-role matches into a 0-100 score: accumulated years
// in relevant roles, average relevance, and average recency.
func (e *ExperienceEvaluator) Fit(matches []types.ExperienceMatch, req types.JobRequirements) float64 {
	if len(matches) == 0 {
		return 0
	}

	var relevantMonths int
	var relevanceSum, recencySum float64
	for _, m := range matches {
		relevanceSum += m.Relevance
		recencySum += m.Recency
		if m.Relevance > 0.5 {
			relevantMonths += m.DurationMonths
		}
	}

	yearsScore := 1.0
	if req.MinYears > 0 {
		yearsScore = float64(relevantMonths) / 12 / float64(req.MinYears)
		if yearsScore > 1 {
			yearsScore = 1
		}
	}
	avgRelevance := relevanceSum / float64(len(matches))
	avgRecency := recencySum / float64(len(matches))

	return (yearsScore*0.4 + avgRelevance*0.4 + avgRecency*0.2) * 100
}

// relevance blends title overlap, domain keyword coverage, and technology
// overlap within the role's bullets.
func (e *ExperienceEvaluator) relevance(exp types.Experience, req types.JobRequirements) float64 {
	score := 0.3 * titleSimilarity(exp.Title, req.Title)

	roleText := strings.ToLower(roleText(exp))
	if len(req.DomainKeywords) > 0 {
		hits := 0
		for _, kw := range req.DomainKeywords {
			if strings.Contains(roleText, strings.ToLower(kw)) {
				hits++
			}
		}
		score += 0.3 * float64(hits) / float64(len(req.DomainKeywords))
	}
	if len(req.Skills) > 0 {
		hits := 0
		for _, skill := range req.Skills {
			if strings.Contains(roleText, strings.ToLower(skill.Name)) {
				hits++
			}
		}
		score += 0.4 * float64(hits) / float64(len(req.Skills))
	}
	return score
}

// titleSimilarity is the Jaccard overlap of title words after dropping
// seniority qualifiers.
func titleSimilarity(a, b string) float64 {
	setA := titleWordSet(a)
	setB := titleWordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func titleWordSet(title string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		w = strings.Trim(w, ",.()-/")
		if w != "" && !seniorityWords[w] {
			out[w] = true
		}
	}
	return out
}

// recency scores how current the role is: ongoing work scores full credit
// and credit decays with years since the role ended.
func (e *ExperienceEvaluator) recency(exp types.Experience) float64 {
	if exp.Current {
		return 1.0
	}
	endYear := lastYear(exp.EndDate)
	if endYear == 0 {
		return 0.5
	}
	gap := e.now.Year() - endYear
	switch {
	case gap <= 0:
		return 1.0
	case gap == 1:
		return 0.9
	case gap == 2:
		return 0.7
	case gap <= 5:
		return 0.5
	default:
		return 0.3
	}
}

// durationMonths approximates role length from the start and end years.
// Unparseable dates default to a year.
func durationMonths(exp types.Experience) int {
	start := lastYear(exp.StartDate)
	end := lastYear(exp.EndDate)
	if exp.Current || end == 0 {
		end = time.Now().Year()
	}
	if start == 0 || end < start {
		return 12
	}
	months := (end - start) * 12
	if months == 0 {
		months = 12
	}
	return months
}

func lastYear(date string) int {
	years := yearPattern.FindAllString(date, -1)
	if len(years) == 0 {
		return 0
	}
	y, err := strconv.Atoi(years[len(years)-1])
	if err != nil {
		return 0
	}
	return y
}

func roleText(exp types.Experience) string {
	parts := []string{exp.Title, exp.Company}
	for _, b := range exp.Bullets {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}
