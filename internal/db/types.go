package db

import "time"

// Job is one tracked job posting.
type Job struct {
	ID             int64     `json:"id"`
	Company        string    `json:"company"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description,omitempty"`
	JDFilePath     string    `json:"jd_file_path,omitempty"`
	JobURL         string    `json:"job_url,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// VariantRecord is the stored form of a generated variant.
type VariantRecord struct {
	VariantID      string    `json:"variant_id"`
	JobID          int64     `json:"job_id"`
	BaseResumePath string    `json:"base_resume_path,omitempty"`
	LatexPath      string    `json:"latex_path,omitempty"`
	PDFPath        string    `json:"pdf_path,omitempty"`
	MetadataPath   string    `json:"metadata_path,omitempty"`
	TargetBullets  int       `json:"target_bullets"`
	AIEnabled      bool      `json:"ai_enhancement_enabled"`
	Enhanced       int       `json:"bullets_enhanced"`
	TotalBullets   int       `json:"total_bullets"`
	KeywordsAdded  []string  `json:"keywords_added,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`

	// Join fields populated by list queries.
	Company  string   `json:"company,omitempty"`
	JobTitle string   `json:"job_title,omitempty"`
	Score    *float64 `json:"overall_score,omitempty"`
}

// ScoreRecord is the stored form of an ATS evaluation.
type ScoreRecord struct {
	VariantID       string    `json:"variant_id"`
	OverallScore    float64   `json:"overall_score"`
	KeywordScore    float64   `json:"keyword_score"`
	FormatScore     float64   `json:"format_score"`
	ExperienceScore float64   `json:"experience_score"`
	RequiredFound   int       `json:"required_found"`
	RequiredTotal   int       `json:"required_total"`
	OptionalFound   int       `json:"optional_found"`
	MissingKeywords []string  `json:"missing_keywords,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	ScoredAt        time.Time `json:"scored_at"`
}

// Application is one submitted job application.
type Application struct {
	ID              int64     `json:"id"`
	JobID           int64     `json:"job_id"`
	VariantID       string    `json:"variant_id,omitempty"`
	AppliedDate     time.Time `json:"applied_date"`
	Method          string    `json:"method,omitempty"`
	URL             string    `json:"url,omitempty"`
	CoverLetterPath string    `json:"cover_letter_path,omitempty"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
}

// ActiveApplication is one row of the active_applications view: an
// application still in play, joined with its job.
type ActiveApplication struct {
	ID              int64     `json:"id"`
	Company         string    `json:"company"`
	JobTitle        string    `json:"job_title"`
	VariantID       string    `json:"variant_id,omitempty"`
	AppliedDate     time.Time `json:"applied_date"`
	Method          string    `json:"method,omitempty"`
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
}

// PipelineRow is one row of the job_pipeline view: a job with its variant
// and application counts and best score.
type PipelineRow struct {
	JobID            int64     `json:"job_id"`
	Company          string    `json:"company"`
	JobTitle         string    `json:"job_title"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	VariantCount     int       `json:"variant_count"`
	ApplicationCount int       `json:"application_count"`
	BestScore        *float64  `json:"best_score,omitempty"`
}

// Statistics summarizes the tracker for the stats endpoint and CLI.
type Statistics struct {
	TotalJobs            int            `json:"total_jobs"`
	TotalVariants        int            `json:"total_variants"`
	TotalApplications    int            `json:"total_applications"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	AverageOverallScore  float64        `json:"average_overall_score"`
}
