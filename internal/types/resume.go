// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Metadata holds document frontmatter parsed from the fenced block at the top
// of a resume source file.
type Metadata struct {
	Name       string            `json:"name,omitempty"`
	TargetRole string            `json:"target_role,omitempty"`
	Version    string            `json:"version,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// PersonalInfo holds the candidate identity block.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Bullet is a single achievement line, the atom of selection and rewriting.
// CommandName and OriginalText are set when the bullet body is expressed as a
// call to a user-defined macro, so the template engine can re-materialize it.
type Bullet struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Section      string `json:"section"`
	Subsection   string `json:"subsection,omitempty"`
	Modifiable   bool   `json:"is_modifiable"`
	CommandName  string `json:"command_name,omitempty"`
	OriginalText string `json:"original_text,omitempty"`
}

// Experience is a single work history entry with its bullets in document order.
type Experience struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Current   bool     `json:"is_current"`
	Bullets   []Bullet `json:"bullets"`
}

// Education is a degree entry.
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
}

// Skills groups the skills section by category.
type Skills struct {
	Technical      []string `json:"technical"`
	Tools          []string `json:"tools"`
	Languages      []string `json:"languages"`
	Certifications []string `json:"certifications"`
}

// Total returns the number of listed skills across all categories.
func (s Skills) Total() int {
	return len(s.Technical) + len(s.Tools) + len(s.Languages)
}

// Project is a named project entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Resume is the complete parsed document. It is immutable after parsing.
type Resume struct {
	Metadata   Metadata     `json:"metadata"`
	SourceFile string       `json:"source_file"`
	Personal   PersonalInfo `json:"personal"`

	Summary        string       `json:"summary,omitempty"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         Skills       `json:"skills"`
	Projects       []Project    `json:"projects,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
	Awards         []string     `json:"awards,omitempty"`

	// AllBullets is the flat index across sections.
	AllBullets []Bullet `json:"all_bullets"`

	// Macros maps custom command names to their expanded plain text.
	Macros map[string]string `json:"macros,omitempty"`

	ParsedAt time.Time `json:"parsed_at"`
}

// ModifiableBullets returns the bullets the enhancer may rewrite.
func (r *Resume) ModifiableBullets() []Bullet {
	var out []Bullet
	for _, b := range r.AllBullets {
		if b.Modifiable {
			out = append(out, b)
		}
	}
	return out
}

// BulletsBySection returns bullets belonging to the named section.
func (r *Resume) BulletsBySection(section string) []Bullet {
	var out []Bullet
	for _, b := range r.AllBullets {
		if b.Section == section {
			out = append(out, b)
		}
	}
	return out
}
