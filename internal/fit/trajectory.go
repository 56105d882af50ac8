package fit

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// seniority ladder positions used for direction analysis.
const (
	rankIntern = iota
	rankJunior
	rankMid
	rankSenior
)

var specializationGroups = map[string][]string{
	"streaming":      {"kafka", "streaming", "messaging", "event"},
	"orchestration":  {"kubernetes", "docker", "container"},
	"infrastructure": {"terraform", "ansible", "infrastructure", "provisioning"},
	"observability":  {"monitoring", "prometheus", "grafana", "observability"},
}

// AnalyzeTrajectory reads career direction from the work history, which is
// expected most-recent-first as parsed from the resume.
func AnalyzeTrajectory(experience []types.Experience) types.CareerTrajectory {
	traj := types.CareerTrajectory{Direction: "insufficient_data"}
	if len(experience) == 0 {
		return traj
	}
	traj.CurrentLevel = levelName(titleRank(experience[0].Title))
	traj.AvgTenureMonths = avgTenure(experience)
	traj.Specializations = specializations(experience)
	if len(experience) < 2 {
		return traj
	}

	// Walk oldest to newest counting moves up and down the ladder.
	up, down := 0, 0
	for i := len(experience) - 1; i > 0; i-- {
		prev := titleRank(experience[i].Title)
		next := titleRank(experience[i-1].Title)
		switch {
		case next > prev:
			up++
		case next < prev:
			down++
		}
	}
	switch {
	case up > down:
		traj.Direction = "upward"
	case down > up:
		traj.Direction = "downward"
	default:
		traj.Direction = "lateral"
	}

	// Promotions are level increases while staying at the same company.
	for i := len(experience) - 1; i > 0; i-- {
		sameCompany := strings.EqualFold(experience[i].Company, experience[i-1].Company)
		if sameCompany && titleRank(experience[i-1].Title) > titleRank(experience[i].Title) {
			traj.Promotions++
		}
	}
	return traj
}

// TrajectoryFit converts a trajectory into a 0-100 component score.
func TrajectoryFit(traj types.CareerTrajectory) float64 {
	score := float64(levelRank(traj.CurrentLevel)) / rankSenior * 50

	switch traj.Direction {
	case "upward":
		score += 20
	case "lateral":
		score += 10
	}

	switch {
	case traj.Promotions >= 2:
		score += 15
	case traj.Promotions == 1:
		score += 10
	}

	switch {
	case traj.AvgTenureMonths >= 18 && traj.AvgTenureMonths <= 48:
		score += 15
	case traj.AvgTenureMonths >= 12:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func titleRank(title string) int {
	lower := strings.ToLower(title)
	for _, w := range []string{"senior", "sr", "lead", "principal", "staff"} {
		if strings.Contains(lower, w) {
			return rankSenior
		}
	}
	for _, w := range []string{"junior", "jr", "associate"} {
		if strings.Contains(lower, w) {
			return rankJunior
		}
	}
	for _, w := range []string{"intern", "trainee", "apprentice"} {
		if strings.Contains(lower, w) {
			return rankIntern
		}
	}
	return rankMid
}

func levelName(rank int) string {
	switch rank {
	case rankSenior:
		return "senior"
	case rankJunior:
		return "junior"
	case rankIntern:
		return "intern"
	default:
		return "mid"
	}
}

func levelRank(name string) int {
	switch name {
	case "senior":
		return rankSenior
	case "junior":
		return rankJunior
	case "intern":
		return rankIntern
	default:
		return rankMid
	}
}

func avgTenure(experience []types.Experience) float64 {
	if len(experience) == 0 {
		return 0
	}
	total := 0
	for _, exp := range experience {
		months := durationMonths(exp)
		if months < 1 {
			months = 1
		}
		total += months
	}
	return float64(total) / float64(len(experience))
}

// specializations reports topic groups with at least two distinct keyword
// hits across the work history.
func specializations(experience []types.Experience) []string {
	text := strings.Builder{}
	for _, exp := range experience {
		text.WriteString(strings.ToLower(roleText(exp)))
		text.WriteString("\n")
	}
	blob := text.String()

	var out []string
	for _, group := range []string{"streaming", "orchestration", "infrastructure", "observability"} {
		hits := 0
		for _, kw := range specializationGroups[group] {
			if strings.Contains(blob, kw) {
				hits++
			}
		}
		if hits >= 2 {
			out = append(out, group)
		}
	}
	return out
}
