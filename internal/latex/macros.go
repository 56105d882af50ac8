package latex

import (
	"regexp"
	"sort"
	"strings"
)

// newcommandPattern matches \newcommand and \renewcommand definitions whose
// body nests at most one brace level, which covers resume bullet macros.
var newcommandPattern = regexp.MustCompile(
	`(?s)\\(?:re)?newcommand\s*\{\s*\\([a-zA-Z0-9_]+)\s*\}\s*(?:\[(\d+)\])?\s*\{((?:[^{}]|\{[^{}]*\})*)\}`)

// Macro is a user-defined command captured from the preamble.
type Macro struct {
	Name     string
	ArgCount int
	Body     string
	Plain    string
}

// MacroTable holds the document's custom commands. Redefinitions overwrite
// earlier entries, matching LaTeX \renewcommand behavior.
type MacroTable struct {
	macros map[string]Macro
	names  []string
}

// ExtractMacros scans source for command definitions in document order.
func ExtractMacros(source string) *MacroTable {
	t := &MacroTable{macros: make(map[string]Macro)}
	for _, m := range newcommandPattern.FindAllStringSubmatch(source, -1) {
		name, argSpec, body := m[1], m[2], m[3]
		argCount := 0
		if argSpec != "" {
			argCount = int(argSpec[0] - '0')
		}
		if _, seen := t.macros[name]; !seen {
			t.names = append(t.names, name)
		}
		t.macros[name] = Macro{
			Name:     name,
			ArgCount: argCount,
			Body:     body,
			Plain:    ToPlainText(body),
		}
	}
	return t
}

// Lookup returns the macro definition for name.
func (t *MacroTable) Lookup(name string) (Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// Names returns the defined macro names in first-definition order.
func (t *MacroTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of defined macros.
func (t *MacroTable) Len() int {
	return len(t.macros)
}

// PlainTexts returns a name-to-expanded-text map for the resume record.
func (t *MacroTable) PlainTexts() map[string]string {
	if len(t.macros) == 0 {
		return nil
	}
	out := make(map[string]string, len(t.macros))
	for name, m := range t.macros {
		out[name] = m.Plain
	}
	return out
}

// ExpandText replaces calls to zero-argument macros in text with their plain
// text bodies. Calls may be written as \name or \name{}. Longer names are
// substituted first so a macro is never clobbered by one of its prefixes.
func (t *MacroTable) ExpandText(text string) string {
	if len(t.macros) == 0 {
		return text
	}
	names := make([]string, 0, len(t.macros))
	for name, m := range t.macros {
		if m.ArgCount == 0 {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, name := range names {
		m := t.macros[name]
		text = strings.ReplaceAll(text, `\`+name+`{}`, m.Plain)
		callPattern := regexp.MustCompile(`\\` + regexp.QuoteMeta(name) + `\b`)
		text = callPattern.ReplaceAllString(text, m.Plain)
	}
	return text
}

// FindCall returns the name of the first defined macro invoked in text, if
// any. The template engine uses this to keep macro-backed bullets intact.
func (t *MacroTable) FindCall(text string) (string, bool) {
	for _, name := range t.names {
		callPattern := regexp.MustCompile(`\\` + regexp.QuoteMeta(name) + `(?:\{\})?`)
		if callPattern.MatchString(text) {
			return name, true
		}
	}
	return "", false
}
