package types

// ChangeType labels how a bullet differs between the base resume and a
// generated variant.
type ChangeType string

const (
	ChangeUnchanged ChangeType = "unchanged"
	ChangeModified  ChangeType = "modified"
	ChangeEnhanced  ChangeType = "ai_enhanced"
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
)

// BulletChange pairs a bullet before and after tailoring.
type BulletChange struct {
	Type       ChangeType `json:"change_type"`
	Original   string     `json:"original,omitempty"`
	Modified   string     `json:"modified,omitempty"`
	Similarity float64    `json:"similarity"`
	Section    string     `json:"section,omitempty"`
}

// IsSignificant reports whether the change is worth surfacing in a review.
// Unchanged bullets and near-identical rewrites are noise.
func (c BulletChange) IsSignificant() bool {
	switch c.Type {
	case ChangeAdded, ChangeRemoved, ChangeEnhanced:
		return true
	case ChangeModified:
		return c.Similarity < 0.9
	default:
		return false
	}
}

// SectionChange aggregates bullet changes for one resume section.
type SectionChange struct {
	Section   string         `json:"section"`
	Changes   []BulletChange `json:"changes"`
	Added     int            `json:"added"`
	Removed   int            `json:"removed"`
	Modified  int            `json:"modified"`
	Enhanced  int            `json:"enhanced"`
	Unchanged int            `json:"unchanged"`
}

// Comparison is the full diff between the base resume and a variant.
type Comparison struct {
	BasePath    string          `json:"base_path"`
	VariantPath string          `json:"variant_path"`
	VariantID   string          `json:"variant_id,omitempty"`
	Sections    []SectionChange `json:"sections"`
	NewKeywords []string        `json:"new_keywords,omitempty"`
	Similarity  float64         `json:"similarity"`
	ChangeScore float64         `json:"change_score"`
}

// HasSignificantChanges reports whether the variant differs meaningfully
// from the base document.
func (c Comparison) HasSignificantChanges() bool {
	return c.ChangeScore > 10
}

// TotalChanges counts all non-unchanged bullet changes.
func (c Comparison) TotalChanges() int {
	n := 0
	for _, s := range c.Sections {
		n += s.Added + s.Removed + s.Modified + s.Enhanced
	}
	return n
}
