// Package fit assesses how well a candidate suits a role beyond keyword
// counting: skill depth, experience relevance, career trajectory, education,
// and coarse culture signals.
package fit

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/textutil"
	"github.com/jonathan/resume-tailor/internal/types"
)

// fuzzySkillThreshold is the similarity needed for a fuzzy skill-name match.
const fuzzySkillThreshold = 0.85

// levelIndicators map proficiency levels to words that signal them in
// evidence sentences.
var levelIndicators = map[types.SkillLevel][]string{
	types.SkillExpert:       {"expert", "deep expertise", "architected", "authority"},
	types.SkillAdvanced:     {"advanced", "led", "designed", "optimized", "scaled"},
	types.SkillIntermediate: {"built", "implemented", "developed", "managed", "maintained"},
	types.SkillBeginner:     {"familiar", "exposure", "basic", "learning"},
}

// skillSynonyms widen matching for names that postings spell differently.
var skillSynonyms = map[string][]string{
	"kafka":      {"apache kafka", "confluent", "kafka streams"},
	"kubernetes": {"k8s", "container orchestration"},
	"ci/cd":      {"cicd", "continuous integration", "jenkins"},
	"monitoring": {"observability", "prometheus", "grafana"},
	"scripting":  {"python", "bash", "shell"},
}

// SkillMatcher resolves required skills against a candidate's resume.
type SkillMatcher struct{}

// NewSkillMatcher returns a ready matcher.
func NewSkillMatcher() *SkillMatcher {
	return &SkillMatcher{}
}

// MatchSkills evaluates each required skill and returns the pairing with the
// candidate's inferred level and supporting evidence.
func (m *SkillMatcher) MatchSkills(resume *types.Resume, required []types.RequiredSkill) []types.SkillMatch {
	candidateSkills := collectSkillNames(resume)
	sentences := evidenceSentences(resume)

	out := make([]types.SkillMatch, 0, len(required))
	for _, req := range required {
		match := types.SkillMatch{Skill: req}
		if name, ok := resolveSkill(req.Name, candidateSkills); ok {
			match.Evidence = findEvidence(name, sentences)
			match.CandidateLevel = inferLevel(match.Evidence)
		}
		match.Strength = strength(match.CandidateLevel, req)
		out = append(out, match)
	}
	return out
}

// resolveSkill tries a direct name match, then synonyms, then a fuzzy
// comparison against the candidate's listed skills.
func resolveSkill(name string, candidateSkills []string) (string, bool) {
	target := strings.ToLower(name)
	for _, s := range candidateSkills {
		if strings.Contains(s, target) || strings.Contains(target, s) {
			return s, true
		}
	}
	for _, syn := range skillSynonyms[target] {
		for _, s := range candidateSkills {
			if strings.Contains(s, syn) || strings.Contains(syn, s) {
				return s, true
			}
		}
	}
	for _, s := range candidateSkills {
		if textutil.Ratio(target, s) >= fuzzySkillThreshold {
			return s, true
		}
	}
	return "", false
}

// findEvidence returns sentences mentioning the skill.
func findEvidence(skill string, sentences []string) []string {
	var out []string
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), skill) {
			out = append(out, s)
		}
	}
	return out
}

// inferLevel reads proficiency from the evidence: indicator words first,
// then sheer volume of mentions.
func inferLevel(evidence []string) types.SkillLevel {
	if len(evidence) == 0 {
		return types.SkillNone
	}
	joined := strings.ToLower(strings.Join(evidence, " "))
	for _, level := range []types.SkillLevel{types.SkillExpert, types.SkillAdvanced, types.SkillIntermediate, types.SkillBeginner} {
		for _, ind := range levelIndicators[level] {
			if strings.Contains(joined, ind) {
				return level
			}
		}
	}
	switch {
	case len(evidence) >= 5:
		return types.SkillAdvanced
	case len(evidence) >= 3:
		return types.SkillIntermediate
	default:
		return types.SkillBeginner
	}
}

// strength scores the pairing in [0,1]. Required skills count double the
// weight of optional ones.
func strength(candidate types.SkillLevel, req types.RequiredSkill) float64 {
	importance := 0.5
	if req.Required {
		importance = 1.0
	}
	reqLevel := req.Level
	if reqLevel == types.SkillNone {
		reqLevel = types.SkillIntermediate
	}
	ratio := float64(candidate) / float64(reqLevel)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * importance
}

func collectSkillNames(resume *types.Resume) []string {
	var out []string
	add := func(items []string) {
		for _, s := range items {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
	}
	add(resume.Skills.Technical)
	add(resume.Skills.Tools)
	add(resume.Skills.Languages)
	add(resume.Certifications)
	return out
}

func evidenceSentences(resume *types.Resume) []string {
	var out []string
	if resume.Summary != "" {
		out = append(out, textutil.Sentences(resume.Summary)...)
	}
	for _, b := range resume.AllBullets {
		out = append(out, b.Text)
	}
	for _, s := range collectSkillNames(resume) {
		out = append(out, s)
	}
	return out
}
