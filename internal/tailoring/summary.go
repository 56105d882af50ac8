package tailoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

// SummarySource values recorded on the variant.
const (
	SummarySourceAI       = "ai"
	SummarySourceKeywords = "keyword_injection"
	SummarySourceGeneric  = "generic"
	SummarySourceOriginal = "original"
)

// SummaryWriter produces the tailored summary paragraph. When the model is
// unavailable or fails it degrades to keyword injection into the existing
// summary, then to a generic template.
type SummaryWriter struct {
	client llm.Client
	log    zerolog.Logger
}

// NewSummaryWriter wires a summary writer to a model client. A nil client
// disables the AI path.
func NewSummaryWriter(client llm.Client, log zerolog.Logger) *SummaryWriter {
	return &SummaryWriter{client: client, log: log.With().Str("component", "summary").Logger()}
}

// Write returns the summary text and which strategy produced it.
func (s *SummaryWriter) Write(ctx context.Context, resume *types.Resume, jobTitle, company string, keywords []types.Keyword) (string, string) {
	top := keywordTexts(keywords, 5)

	if s.client != nil && s.client.IsAvailable(ctx) {
		system, prompt := llm.SummaryPrompt(jobTitle, company, top, resume.Summary)
		raw, err := s.client.Generate(ctx, system, prompt, llm.Options{
			Temperature: llm.SummaryTemperature,
			MaxTokens:   llm.SummaryMaxTokens,
		})
		if err == nil {
			if text := llm.CleanResponse(raw); len(text) > 40 {
				return text, SummarySourceAI
			}
		} else {
			s.log.Warn().Err(err).Msg("summary generation failed, falling back")
		}
	}

	if resume.Summary != "" {
		if injected, ok := injectKeywords(resume.Summary, keywordTexts(keywords, 3)); ok {
			return injected, SummarySourceKeywords
		}
		return resume.Summary, SummarySourceOriginal
	}

	return genericSummary(jobTitle, top), SummarySourceGeneric
}

// injectKeywords appends a specialization sentence naming up to two of the
// top keywords the summary does not already mention.
func injectKeywords(summary string, top []string) (string, bool) {
	lower := strings.ToLower(summary)
	var missing []string
	for _, kw := range top {
		if len(missing) >= 2 {
			break
		}
		if !strings.Contains(lower, kw) {
			missing = append(missing, kw)
		}
	}
	if len(missing) == 0 {
		return summary, false
	}
	out := strings.TrimRight(summary, " ")
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return fmt.Sprintf("%s Specialized in %s.", out, strings.Join(missing, ", ")), true
}

func genericSummary(jobTitle string, top []string) string {
	expertise := "relevant technologies"
	if len(top) > 0 {
		shown := top
		if len(shown) > 3 {
			shown = shown[:3]
		}
		expertise = strings.Join(shown, ", ")
	}
	title := jobTitle
	if title == "" {
		title = "technical"
	}
	return fmt.Sprintf("Experienced professional with expertise in %s seeking %s role.", expertise, title)
}
