package latex

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	experienceSectionPattern = `experience|work\s*history|employment`
	educationSectionPattern  = `education`
	skillsSectionPattern     = `(?:technical\s*)?skills|technologies`
	summarySectionPattern    = `summary|objective|profile`
	certsSectionPattern      = `certifications?`
	awardsSectionPattern     = `awards?|honors?`
	projectsSectionPattern   = `projects?`
)

var (
	namePattern      = regexp.MustCompile(`\\(?:name|author)\{([^}]*)\}`)
	boldNamePattern  = regexp.MustCompile(`\\(?:Huge|LARGE|Large|large)?\s*\\bfseries\s+([A-Z][a-zA-Z\s]+?)(?:\\\\|\})`)
	emailCmdPattern  = regexp.MustCompile(`\\email\{([^}]*)\}`)
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneCmdPattern  = regexp.MustCompile(`\\(?:phone|mobile)\{([^}]*)\}`)
	phonePattern     = regexp.MustCompile(`\+?\d{1,3}[\s\-]?\d{3,4}[\s\-]?\d{4,}`)
	locationPattern  = regexp.MustCompile(`\\(?:location|address)\{([^}]*)\}`)
	linkedinPattern  = regexp.MustCompile(`linkedin\.com/in/([A-Za-z0-9\-_%]+)`)
	githubPattern    = regexp.MustCompile(`github\.com/([A-Za-z0-9\-_%]+)`)
	subheadingMarker = regexp.MustCompile(`\\resumeSubheading`)
	resumeItemMarker = regexp.MustCompile(`\\resumeItem\s*\{`)
	projectHeading   = regexp.MustCompile(`\\resumeProjectHeading\s*\{`)

	fallbackEntryPattern = regexp.MustCompile(`(?m)^(.+?)\s*(?:--|—|\||@)\s*(.+?)$`)
	dateRangePattern     = regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{4})\s*(?:--|–|-|to)\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{4}|Present|present)`)
	italicLocPattern     = regexp.MustCompile(`\\textit\{([^}]+)\}.*?\\hfill`)
	skillCategoryPattern = regexp.MustCompile(`([A-Za-z\s]+):\s*([^\n]+)`)
)

// Parser turns LaTeX resume sources into structured resumes.
type Parser struct{}

// NewParser returns a ready parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses the document at path.
func (p *Parser) ParseFile(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: "cannot read file", Cause: err}
	}
	resume, err := p.Parse(string(data), path)
	if err != nil {
		return nil, err
	}
	return resume, nil
}

// Parse parses source into a resume. sourcePath is recorded for artifacts
// and error messages and may be empty.
func (p *Parser) Parse(source, sourcePath string) (*types.Resume, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ParseError{Path: sourcePath, Message: "empty document"}
	}

	meta, body := splitFrontmatter(source)
	macros := ExtractMacros(body)
	sections := ExtractSections(body)

	resume := &types.Resume{
		Metadata:   meta,
		SourceFile: sourcePath,
		Personal:   parsePersonalInfo(body),
		Macros:     macros.PlainTexts(),
		ParsedAt:   time.Now().UTC(),
	}

	if sec := FindSection(sections, summarySectionPattern); sec != nil {
		resume.Summary = parseSummary(sec.Content)
	}
	if sec := FindSection(sections, experienceSectionPattern); sec != nil {
		resume.Experience = parseExperience(sec.Content, macros)
	}
	if sec := FindSection(sections, educationSectionPattern); sec != nil {
		resume.Education = parseEducation(sec.Content)
	}
	if sec := FindSection(sections, skillsSectionPattern); sec != nil {
		resume.Skills = parseSkills(sec.Content)
	}
	if sec := FindSection(sections, certsSectionPattern); sec != nil {
		resume.Certifications = parseItemList(sec.Content)
	}
	if sec := FindSection(sections, awardsSectionPattern); sec != nil {
		resume.Awards = parseItemList(sec.Content)
	}
	if sec := FindSection(sections, projectsSectionPattern); sec != nil {
		resume.Projects = parseProjects(sec.Content)
	}

	for _, exp := range resume.Experience {
		resume.AllBullets = append(resume.AllBullets, exp.Bullets...)
	}
	return resume, nil
}

// splitFrontmatter strips an optional fenced metadata block from the top of
// the document.
func splitFrontmatter(source string) (types.Metadata, string) {
	var meta types.Metadata
	trimmed := strings.TrimLeft(source, "\n\r \t")
	if !strings.HasPrefix(trimmed, "---") {
		return meta, source
	}
	parts := strings.SplitN(trimmed, "---", 3)
	if len(parts) < 3 {
		return meta, source
	}
	for _, line := range strings.Split(parts[1], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.ToLower(key))
		value = strings.TrimSpace(value)
		switch key {
		case "name":
			meta.Name = value
		case "target_role":
			meta.TargetRole = value
		case "version":
			meta.Version = value
		case "tags":
			for _, tag := range strings.Split(value, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					meta.Tags = append(meta.Tags, tag)
				}
			}
		default:
			if key != "" && value != "" {
				if meta.Fields == nil {
					meta.Fields = make(map[string]string)
				}
				meta.Fields[key] = value
			}
		}
	}
	return meta, parts[2]
}

func parsePersonalInfo(body string) types.PersonalInfo {
	info := types.PersonalInfo{
		Name:     firstGroup(namePattern, body),
		Email:    firstGroup(emailCmdPattern, body),
		Phone:    firstGroup(phoneCmdPattern, body),
		Location: firstGroup(locationPattern, body),
		LinkedIn: firstGroup(linkedinPattern, body),
		GitHub:   firstGroup(githubPattern, body),
	}
	if info.Name == "" {
		info.Name = strings.TrimSpace(firstGroup(boldNamePattern, body))
	}
	if info.Email == "" {
		info.Email = emailPattern.FindString(body)
	}
	if info.Phone == "" {
		info.Phone = strings.TrimSpace(phonePattern.FindString(body))
	}
	info.Name = ToPlainText(info.Name)
	info.Location = ToPlainText(info.Location)
	return info
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

func parseSummary(content string) string {
	if idx := strings.Index(content, `\begin{itemize}`); idx >= 0 {
		content = content[:idx]
	}
	text := ToPlainText(content)
	if len(text) > 50 {
		return text
	}
	return ""
}

// parseExperience extracts work history entries. Documents built on the
// \resumeSubheading template are parsed structurally; anything else falls
// back to line-oriented heuristics.
func parseExperience(content string, macros *MacroTable) []types.Experience {
	marks := subheadingMarker.FindAllStringIndex(content, -1)
	if len(marks) == 0 {
		return parseExperienceFallback(content)
	}

	var out []types.Experience
	for i, m := range marks {
		args, argsEnd := BraceArgs(content, m[1], 4)
		if len(args) < 4 {
			continue
		}
		end := len(content)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		exp := types.Experience{
			Title:    ToPlainText(args[0]),
			Company:  ToPlainText(args[2]),
			Location: ToPlainText(args[3]),
		}
		exp.StartDate, exp.EndDate, exp.Current = splitDates(args[1])
		exp.Bullets = parseResumeItems(content[argsEnd:end], exp, macros)
		if len(exp.Bullets) > 0 {
			out = append(out, exp)
		}
	}
	return out
}

func splitDates(dates string) (start, end string, current bool) {
	plain := ToPlainText(dates)
	var parts []string
	for _, sep := range []string{"--", "–", "-"} {
		if strings.Contains(plain, sep) {
			parts = strings.SplitN(plain, sep, 2)
			break
		}
	}
	if len(parts) == 2 {
		start = strings.TrimSpace(parts[0])
		end = strings.TrimSpace(parts[1])
	} else {
		start = strings.TrimSpace(plain)
	}
	current = strings.Contains(strings.ToLower(end), "present")
	return start, end, current
}

// parseResumeItems reads \resumeItem{...} bullets between two subheadings.
// Bullets whose body invokes a custom macro are marked non-modifiable and
// keep the original call so the template engine can re-emit it verbatim.
func parseResumeItems(content string, exp types.Experience, macros *MacroTable) []types.Bullet {
	var bullets []types.Bullet
	subsection := fmt.Sprintf("%s - %s", exp.Title, exp.Company)
	for _, m := range resumeItemMarker.FindAllStringIndex(content, -1) {
		raw, _ := BraceGroup(content, m[1]-1)
		text := ToPlainText(macros.ExpandText(raw))
		if text == "" {
			continue
		}
		b := types.Bullet{
			ID:         bulletID(exp.Company, len(bullets)),
			Text:       text,
			Section:    "experience",
			Subsection: subsection,
			Modifiable: true,
		}
		if name, ok := macros.FindCall(raw); ok {
			b.CommandName = name
			b.OriginalText = strings.TrimSpace(raw)
			b.Modifiable = false
		}
		bullets = append(bullets, b)
	}
	return bullets
}

func bulletID(company string, index int) string {
	id := strings.ToLower(company)
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "&", "and")
	return fmt.Sprintf("%s_%d", id, index)
}

// parseExperienceFallback handles plain "Title -- Company" documents with
// ordinary itemize lists.
func parseExperienceFallback(content string) []types.Experience {
	var entries [][]int
	for _, e := range fallbackEntryPattern.FindAllStringSubmatchIndex(content, -1) {
		line := content[e[0]:e[1]]
		rawTitle := strings.TrimSpace(content[e[2]:e[3]])
		// Header lines only: skip LaTeX commands, comments, and date ranges.
		if strings.HasPrefix(rawTitle, `\`) || strings.HasPrefix(rawTitle, "%") || dateRangePattern.MatchString(line) {
			continue
		}
		entries = append(entries, e)
	}
	var out []types.Experience
	for i, e := range entries {
		title := ToPlainText(content[e[2]:e[3]])
		company := ToPlainText(content[e[4]:e[5]])
		if title == "" || company == "" {
			continue
		}
		end := len(content)
		if i+1 < len(entries) {
			end = entries[i+1][0]
		}
		span := content[e[1]:end]
		exp := types.Experience{Title: title, Company: company}
		if d := dateRangePattern.FindStringSubmatch(span); d != nil {
			exp.StartDate, exp.EndDate = d[1], d[2]
			exp.Current = strings.EqualFold(d[2], "present")
		}
		if loc := italicLocPattern.FindStringSubmatch(span); loc != nil {
			exp.Location = ToPlainText(loc[1])
		}
		subsection := fmt.Sprintf("%s - %s", title, company)
		for _, block := range ListBlocks(span) {
			for _, item := range Items(block) {
				text := ToPlainText(item)
				if text == "" {
					continue
				}
				exp.Bullets = append(exp.Bullets, types.Bullet{
					ID:         bulletID(company, len(exp.Bullets)),
					Text:       text,
					Section:    "experience",
					Subsection: subsection,
					Modifiable: true,
				})
			}
		}
		if len(exp.Bullets) > 0 {
			out = append(out, exp)
		}
	}
	return out
}

func parseEducation(content string) []types.Education {
	var out []types.Education
	for _, m := range subheadingMarker.FindAllStringIndex(content, -1) {
		args, _ := BraceArgs(content, m[1], 4)
		if len(args) < 4 {
			continue
		}
		out = append(out, types.Education{
			Institution:    ToPlainText(args[0]),
			Location:       ToPlainText(args[1]),
			Degree:         ToPlainText(args[2]),
			GraduationDate: ToPlainText(args[3]),
		})
	}
	return out
}

func parseSkills(content string) types.Skills {
	var skills types.Skills
	for _, line := range strings.Split(content, "\n") {
		m := skillCategoryPattern.FindStringSubmatch(ToPlainText(line))
		if m == nil {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(m[1]))
		var items []string
		for _, item := range strings.Split(m[2], ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		switch classifySkillCategory(category) {
		case "technical":
			skills.Technical = appendUnique(skills.Technical, items)
		case "languages":
			skills.Languages = appendUnique(skills.Languages, items)
		default:
			skills.Tools = appendUnique(skills.Tools, items)
		}
	}
	return skills
}

func classifySkillCategory(category string) string {
	switch {
	case strings.Contains(category, "programming"),
		strings.Contains(category, "technical"),
		strings.Contains(category, "kafka"),
		strings.Contains(category, "ecosystem"),
		strings.Contains(category, "scripting"):
		return "technical"
	case strings.Contains(category, "tool"),
		strings.Contains(category, "devops"),
		strings.Contains(category, "platform"),
		strings.Contains(category, "monitoring"):
		return "tools"
	case strings.Contains(category, "language"):
		return "languages"
	default:
		return "tools"
	}
}

func appendUnique(dst []string, items []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range items {
		if !seen[strings.ToLower(s)] {
			seen[strings.ToLower(s)] = true
			dst = append(dst, s)
		}
	}
	return dst
}

func parseItemList(content string) []string {
	var out []string
	blocks := ListBlocks(content)
	if len(blocks) == 0 {
		blocks = []string{content}
	}
	for _, block := range blocks {
		for _, item := range Items(block) {
			if text := ToPlainText(item); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

func parseProjects(content string) []types.Project {
	var out []types.Project
	for _, m := range projectHeading.FindAllStringIndex(content, -1) {
		args, argsEnd := BraceArgs(content, m[1]-1, 2)
		if len(args) == 0 {
			continue
		}
		name := ToPlainText(args[0])
		if name == "" {
			continue
		}
		var desc []string
		span := content[argsEnd:]
		if next := projectHeading.FindStringIndex(span); next != nil {
			span = span[:next[0]]
		}
		for _, block := range ListBlocks(span) {
			for _, item := range Items(block) {
				if text := ToPlainText(item); text != "" {
					desc = append(desc, text)
				}
			}
		}
		out = append(out, types.Project{Name: name, Description: strings.Join(desc, "; ")})
	}
	return out
}
