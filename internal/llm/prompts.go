package llm

import (
	"fmt"
	"strings"
)

// Generation parameters tuned per task.
const (
	EnhanceTemperature = 0.3
	EnhanceMaxTokens   = 100
	SummaryTemperature = 0.5
	SummaryMaxTokens   = 150
)

const enhanceSystem = `You are a resume writing assistant. You rewrite a single resume bullet to better target a job, keeping it truthful, concise, and in the past tense. Respond with the rewritten bullet only, no explanations.`

// EnhancePrompt builds the user prompt for rewriting one bullet. Missing
// keywords, when given, nudge the model toward terms the resume lacks.
func EnhancePrompt(bullet, jobTitle string, missingKeywords []string) (system, prompt string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Rewrite this resume bullet for a %s role:\n\n%s\n", jobTitle, bullet)
	if len(missingKeywords) > 0 {
		fmt.Fprintf(&b, "\nIf truthful and natural, work in one of these keywords: %s\n",
			strings.Join(missingKeywords, ", "))
	}
	b.WriteString("\nKeep roughly the same length. Keep all numbers and facts unchanged.")
	return enhanceSystem, b.String()
}

const summarySystem = `You are a resume writing assistant. You write tight professional summaries. Respond with the summary only, no explanations.`

// SummaryPrompt builds the user prompt for generating a tailored summary.
func SummaryPrompt(jobTitle, company string, keywords []string, currentSummary string) (system, prompt string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a professional resume summary of 3-4 sentences (60-80 words) for a candidate applying to a %s role", jobTitle)
	if company != "" {
		fmt.Fprintf(&b, " at %s", company)
	}
	b.WriteString(".\n")
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "\nEmphasize these skills where truthful: %s\n", strings.Join(keywords, ", "))
	}
	if currentSummary != "" {
		fmt.Fprintf(&b, "\nBase it on the candidate's current summary:\n%s\n", currentSummary)
	}
	return summarySystem, b.String()
}
