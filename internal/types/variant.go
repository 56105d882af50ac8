package types

import (
	"fmt"
	"strings"
	"time"
)

// GenerationConfig controls bullet selection and AI enhancement for one run.
type GenerationConfig struct {
	TargetBullets            int     `json:"target_bullets" validate:"gte=1,lte=50"`
	MinBulletsPerJob         int     `json:"min_bullets_per_job" validate:"gte=0"`
	MaxBulletsPerJob         int     `json:"max_bullets_per_job" validate:"gte=1"`
	UseAIEnhancement         bool    `json:"use_ai_enhancement"`
	MaxBulletsToEnhance      int     `json:"max_bullets_to_enhance" validate:"gte=0"`
	MinEnhancementConfidence float64 `json:"min_enhancement_confidence" validate:"gte=0,lte=1"`
	AutoScore                bool    `json:"auto_score"`
}

// DefaultGenerationConfig returns the settings used when the caller does not
// override anything.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		TargetBullets:            18,
		MinBulletsPerJob:         3,
		MaxBulletsPerJob:         15,
		UseAIEnhancement:         true,
		MaxBulletsToEnhance:      5,
		MinEnhancementConfidence: 0.7,
		AutoScore:                true,
	}
}

// SelectedBullet is a bullet chosen for a variant, with its relevance score
// and the human-readable reason it made the cut. EnhancedText is set when the
// AI rewrite was accepted.
type SelectedBullet struct {
	Bullet         Bullet  `json:"bullet"`
	RelevanceScore float64 `json:"relevance_score"`
	Reason         string  `json:"selection_reason"`
	Enhanced       bool    `json:"enhanced"`
	EnhancedText   string  `json:"enhanced_text,omitempty"`
}

// FinalText returns the text that should appear in the output document.
func (b SelectedBullet) FinalText() string {
	if b.Enhanced && b.EnhancedText != "" {
		return b.EnhancedText
	}
	return b.Bullet.Text
}

// ExperienceSection groups the selected bullets for one work history entry,
// preserving document order within the entry.
type ExperienceSection struct {
	Subsection string           `json:"subsection"`
	Title      string           `json:"title"`
	Company    string           `json:"company"`
	Bullets    []SelectedBullet `json:"bullets"`
}

// Enhancement is the outcome of one AI bullet rewrite attempt.
type Enhancement struct {
	Original    string   `json:"original"`
	Enhanced    string   `json:"enhanced"`
	Confidence  float64  `json:"confidence"`
	Improvement float64  `json:"improvement"`
	KeywordsAdd []string `json:"keywords_added,omitempty"`
}

// Variant is a tailored resume generated for one job posting.
type Variant struct {
	ID           string `json:"variant_id"`
	JobTitle     string `json:"job_title"`
	Company      string `json:"company"`
	BaseResume   string `json:"base_resume_path"`
	LatexPath    string `json:"latex_path,omitempty"`
	PDFPath      string `json:"pdf_path,omitempty"`
	MetadataPath string `json:"metadata_path,omitempty"`

	Sections        []ExperienceSection `json:"sections"`
	Summary         string              `json:"summary,omitempty"`
	SummarySource   string              `json:"summary_source,omitempty"`
	Skills          Skills              `json:"skills"`
	KeywordsTargets []string            `json:"keyword_targets,omitempty"`
	KeywordsAdded   []string            `json:"keywords_added,omitempty"`

	TotalBullets    int  `json:"total_bullets"`
	BulletsEnhanced int  `json:"bullets_enhanced"`
	AIEnabled       bool `json:"ai_enhancement_enabled"`

	ATS *ATSScore    `json:"ats_score,omitempty"`
	Fit *JobFitScore `json:"fit_score,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// OutputStem builds the file name stem for the variant's artifacts, e.g.
// "resume_Acme_platform_engineer_1a2b3c4d".
func (v Variant) OutputStem() string {
	short := v.ID
	if len(short) > 8 {
		short = short[:8]
	}
	parts := []string{"resume"}
	if v.Company != "" {
		parts = append(parts, sanitizeFilePart(v.Company))
	}
	if v.JobTitle != "" {
		parts = append(parts, sanitizeFilePart(strings.ToLower(v.JobTitle)))
	}
	parts = append(parts, short)
	return strings.Join(parts, "_")
}

// SelectedCount returns the number of bullets across all sections.
func (v Variant) SelectedCount() int {
	n := 0
	for _, s := range v.Sections {
		n += len(s.Bullets)
	}
	return n
}

func sanitizeFilePart(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "x"
	}
	return out
}

// ShortID returns the 8-character task/file identifier for the variant.
func (v Variant) ShortID() string {
	if len(v.ID) > 8 {
		return v.ID[:8]
	}
	return v.ID
}

// String implements fmt.Stringer for log lines.
func (v Variant) String() string {
	return fmt.Sprintf("variant %s (%s at %s, %d bullets)", v.ShortID(), v.JobTitle, v.Company, v.TotalBullets)
}
