package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SaveVariant inserts one variant row.
func (db *DB) SaveVariant(ctx context.Context, v VariantRecord) error {
	return db.insertVariant(ctx, db.conn, v)
}

// SaveScore inserts one ATS score row.
func (db *DB) SaveScore(ctx context.Context, s ScoreRecord) error {
	return db.insertScore(ctx, db.conn, s)
}

// AddVariantWithScore stores the variant and its score in one transaction,
// so a crash between the two writes cannot leave an unscored variant that
// claims to be scored.
func (db *DB) AddVariantWithScore(ctx context.Context, v VariantRecord, s *ScoreRecord) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := db.insertVariant(ctx, tx, v); err != nil {
		return err
	}
	if s != nil {
		s.VariantID = v.VariantID
		if err := db.insertScore(ctx, tx, *s); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit variant: %w", err)
	}
	return nil
}

// execer covers *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (db *DB) insertVariant(ctx context.Context, ex execer, v VariantRecord) error {
	keywords, err := json.Marshal(sliceOrEmpty(v.KeywordsAdded))
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO variants (variant_id, job_id, base_resume_path, latex_path, pdf_path,
		                       metadata_path, target_bullets, ai_enhancement_enabled,
		                       bullets_enhanced, total_bullets, keywords_added)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VariantID, v.JobID, v.BaseResumePath, v.LatexPath, v.PDFPath,
		v.MetadataPath, v.TargetBullets, v.AIEnabled, v.Enhanced, v.TotalBullets, string(keywords),
	)
	if err != nil {
		return fmt.Errorf("failed to insert variant: %w", err)
	}
	return nil
}

func (db *DB) insertScore(ctx context.Context, ex execer, s ScoreRecord) error {
	missing, err := json.Marshal(sliceOrEmpty(s.MissingKeywords))
	if err != nil {
		return fmt.Errorf("failed to encode missing keywords: %w", err)
	}
	recs, err := json.Marshal(sliceOrEmpty(s.Recommendations))
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO ats_scores (variant_id, overall_score, keyword_score, format_score,
		                         experience_score, required_found, required_total,
		                         optional_found, missing_keywords, recommendations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.VariantID, s.OverallScore, s.KeywordScore, s.FormatScore,
		s.ExperienceScore, s.RequiredFound, s.RequiredTotal,
		s.OptionalFound, string(missing), string(recs),
	)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

// GetVariant fetches one variant joined with its job and latest score.
func (db *DB) GetVariant(ctx context.Context, variantID string) (*VariantRecord, error) {
	row := db.conn.QueryRowContext(ctx, variantSelect+` WHERE v.variant_id = ?`, variantID)
	v, err := scanVariant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	return v, nil
}

// ListVariants returns all variants newest first, each joined with its job
// and latest score.
func (db *DB) ListVariants(ctx context.Context) ([]VariantRecord, error) {
	rows, err := db.conn.QueryContext(ctx, variantSelect+` ORDER BY v.generated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var out []VariantRecord
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// DeleteVariant removes the variant row; scores cascade.
func (db *DB) DeleteVariant(ctx context.Context, variantID string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM variants WHERE variant_id = ?`, variantID)
	if err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// LatestScore returns the most recent score for a variant, or ErrNotFound.
func (db *DB) LatestScore(ctx context.Context, variantID string) (*ScoreRecord, error) {
	var (
		s             ScoreRecord
		missing, recs string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT variant_id, overall_score, keyword_score, format_score, experience_score,
		        required_found, required_total, optional_found, missing_keywords,
		        recommendations, scored_at
		 FROM ats_scores WHERE variant_id = ? ORDER BY scored_at DESC, id DESC LIMIT 1`,
		variantID,
	).Scan(&s.VariantID, &s.OverallScore, &s.KeywordScore, &s.FormatScore, &s.ExperienceScore,
		&s.RequiredFound, &s.RequiredTotal, &s.OptionalFound, &missing, &recs, &s.ScoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	if err := json.Unmarshal([]byte(missing), &s.MissingKeywords); err != nil {
		return nil, fmt.Errorf("failed to decode missing keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(recs), &s.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return &s, nil
}

const variantSelect = `
	SELECT v.variant_id, v.job_id, v.base_resume_path, v.latex_path, v.pdf_path,
	       v.metadata_path, v.target_bullets, v.ai_enhancement_enabled,
	       v.bullets_enhanced, v.total_bullets, v.keywords_added, v.generated_at,
	       j.company, j.job_title,
	       (SELECT overall_score FROM ats_scores s
	        WHERE s.variant_id = v.variant_id
	        ORDER BY s.scored_at DESC, s.id DESC LIMIT 1) AS overall_score
	FROM variants v
	JOIN jobs j ON j.id = v.job_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariant(row rowScanner) (*VariantRecord, error) {
	var (
		v        VariantRecord
		keywords string
		score    sql.NullFloat64
	)
	err := row.Scan(&v.VariantID, &v.JobID, &v.BaseResumePath, &v.LatexPath, &v.PDFPath,
		&v.MetadataPath, &v.TargetBullets, &v.AIEnabled, &v.Enhanced, &v.TotalBullets,
		&keywords, &v.GeneratedAt, &v.Company, &v.JobTitle, &score)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &v.KeywordsAdded); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	if score.Valid {
		v.Score = &score.Float64
	}
	return &v, nil
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
