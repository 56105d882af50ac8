package tailoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

var (
	// summaryBlockPattern captures the Summary section body up to the next
	// decorated section divider comment.
	summaryBlockPattern = regexp.MustCompile(`(?s)(\\section\*?\{Summary\}\s*\n)(.*?)(\n\s*%-+[A-Z\s]+-+)`)

	// itemListPattern captures one bullet list body between the resume list
	// delimiter macros.
	itemListPattern = regexp.MustCompile(`(?s)(\\resumeItemListStart\s*\n)(.*?)(\n?\s*\\resumeItemListEnd)`)

	// citationMarkPattern strips leftover reference marks like " [3]." that
	// models sometimes emit.
	citationMarkPattern = regexp.MustCompile(`\s*\[\w+\]\s*\.?`)
)

// RenderError reports a template splice that could not be applied.
type RenderError struct {
	What    string
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s", e.What, e.Message)
}

// Render splices the variant's summary and selected bullets into the base
// LaTeX source and returns the new document. The base document's preamble,
// macros, and non-experience sections pass through untouched.
func Render(baseSource string, variant *types.Variant) (string, error) {
	out := baseSource

	if variant.Summary != "" {
		replaced, ok := spliceSummary(out, variant.Summary)
		if !ok {
			return "", &RenderError{What: "summary", Message: "no Summary section found in template"}
		}
		out = replaced
	}

	replaced, n := spliceBullets(out, variant.Sections)
	if n < len(variant.Sections) {
		return "", &RenderError{
			What:    "bullets",
			Message: fmt.Sprintf("template has %d bullet lists but variant has %d sections", n, len(variant.Sections)),
		}
	}
	return replaced, nil
}

func spliceSummary(source, summary string) (string, bool) {
	loc := summaryBlockPattern.FindStringSubmatchIndex(source)
	if loc == nil {
		return source, false
	}
	head := source[loc[2]:loc[3]]
	tail := source[loc[6]:loc[7]]
	return source[:loc[0]] + head + escapeLatex(summary) + tail + source[loc[1]:], true
}

// spliceBullets pairs bullet list blocks with variant sections in document
// order and rewrites each block's items. Blocks beyond the variant's section
// count keep their original content. Returns how many blocks were rewritten.
func spliceBullets(source string, sections []types.ExperienceSection) (string, int) {
	matches := itemListPattern.FindAllStringSubmatchIndex(source, -1)
	if len(matches) == 0 {
		return source, 0
	}

	var b strings.Builder
	prev := 0
	rewritten := 0
	for i, loc := range matches {
		b.WriteString(source[prev:loc[0]])
		head := source[loc[2]:loc[3]]
		tail := source[loc[6]:loc[7]]
		if i < len(sections) {
			b.WriteString(head)
			b.WriteString(renderItems(sections[i].Bullets))
			b.WriteString(tail)
			rewritten++
		} else {
			b.WriteString(source[loc[0]:loc[1]])
		}
		prev = loc[1]
	}
	b.WriteString(source[prev:])
	return b.String(), rewritten
}

// renderItems emits \resumeItem lines for the selected bullets. Macro-backed
// bullets are re-emitted exactly as authored so their definitions still apply.
func renderItems(bullets []types.SelectedBullet) string {
	var b strings.Builder
	for i, sel := range bullets {
		if i > 0 {
			b.WriteString("\n")
		}
		if sel.Bullet.CommandName != "" && sel.Bullet.OriginalText != "" {
			fmt.Fprintf(&b, `      \resumeItem{%s}`, sel.Bullet.OriginalText)
			continue
		}
		text := citationMarkPattern.ReplaceAllString(sel.FinalText(), "")
		text = strings.TrimSpace(text)
		fmt.Fprintf(&b, `      \resumeItem{%s}`, escapeLatex(text))
	}
	return b.String()
}

var latexEscaper = strings.NewReplacer(
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
)

// escapeLatex protects special characters in model-generated text. Text that
// already carries escapes is left alone.
func escapeLatex(s string) string {
	if strings.Contains(s, `\&`) || strings.Contains(s, `\%`) || strings.Contains(s, `\$`) {
		return s
	}
	return latexEscaper.Replace(s)
}
