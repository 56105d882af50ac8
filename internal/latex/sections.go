package latex

import (
	"regexp"
	"strings"
)

var (
	sectionMarkerPattern = regexp.MustCompile(`\\(sub)?(sub)?section\*?\s*\{([^}]+)\}`)
	listEnvPattern       = regexp.MustCompile(`(?s)\\begin\{(itemize|enumerate)\}(?:\[[^\]]*\])?(.*?)\\end\{(itemize|enumerate)\}`)
	itemMarkerPattern    = regexp.MustCompile(`\\item\b`)
	listEndPattern       = regexp.MustCompile(`\\end\{(?:itemize|enumerate)\}`)
)

// Section is a top-level or nested document section.
type Section struct {
	Name    string
	Level   int
	Content string
	Start   int
	End     int
}

// ExtractSections splits the document at section markers. A section's
// content runs until the next marker at the same or a shallower level.
func ExtractSections(source string) []Section {
	matches := sectionMarkerPattern.FindAllStringSubmatchIndex(source, -1)
	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		level := 1
		if m[2] >= 0 {
			level++
		}
		if m[4] >= 0 {
			level++
		}
		name := source[m[6]:m[7]]
		end := len(source)
		for _, next := range matches[i+1:] {
			nextLevel := 1
			if next[2] >= 0 {
				nextLevel++
			}
			if next[4] >= 0 {
				nextLevel++
			}
			if nextLevel <= level {
				end = next[0]
				break
			}
		}
		sections = append(sections, Section{
			Name:    strings.TrimSpace(name),
			Level:   level,
			Content: source[m[1]:end],
			Start:   m[0],
			End:     end,
		})
	}
	return sections
}

// FindSection returns the first section whose name matches the
// case-insensitive pattern, or nil.
func FindSection(sections []Section, pattern string) *Section {
	re := regexp.MustCompile(`(?i)` + pattern)
	for i := range sections {
		if re.MatchString(sections[i].Name) {
			return &sections[i]
		}
	}
	return nil
}

// ListBlocks returns the bodies of itemize and enumerate environments in
// content, outermost first.
func ListBlocks(content string) []string {
	var out []string
	for _, m := range listEnvPattern.FindAllStringSubmatch(content, -1) {
		out = append(out, m[2])
	}
	return out
}

// Items splits content at \item markers. Each item runs until the next
// \item, a list end, or the end of content.
func Items(content string) []string {
	marks := itemMarkerPattern.FindAllStringIndex(content, -1)
	items := make([]string, 0, len(marks))
	for i, m := range marks {
		end := len(content)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		body := content[m[1]:end]
		if stop := listEndPattern.FindStringIndex(body); stop != nil {
			body = body[:stop[0]]
		}
		if body = strings.TrimSpace(body); body != "" {
			items = append(items, body)
		}
	}
	return items
}
