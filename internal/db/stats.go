package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
)

// Stats aggregates counts and the average ATS score across all variants.
func (db *DB) Stats(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{ApplicationsByStatus: make(map[string]int)}

	counts := map[string]*int{
		`SELECT COUNT(*) FROM jobs`:         &stats.TotalJobs,
		`SELECT COUNT(*) FROM variants`:     &stats.TotalVariants,
		`SELECT COUNT(*) FROM applications`: &stats.TotalApplications,
	}
	for query, dst := range counts {
		if err := db.conn.QueryRowContext(ctx, query).Scan(dst); err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to group applications: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.ApplicationsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	err = db.conn.QueryRowContext(ctx, `SELECT AVG(overall_score) FROM ats_scores`).Scan(&avg)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to average scores: %w", err)
	}
	if avg.Valid {
		stats.AverageOverallScore = math.Round(avg.Float64*100) / 100
	}
	return stats, nil
}

// JobPipeline returns every job with its variant and application counts and
// best ATS score, newest job first.
func (db *DB) JobPipeline(ctx context.Context) ([]PipelineRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, company, job_title, status, created_at,
		        variant_count, application_count, best_score
		 FROM job_pipeline ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query job pipeline: %w", err)
	}
	defer rows.Close()

	var out []PipelineRow
	for rows.Next() {
		var r PipelineRow
		if err := rows.Scan(&r.JobID, &r.Company, &r.JobTitle, &r.Status, &r.CreatedAt,
			&r.VariantCount, &r.ApplicationCount, &r.BestScore); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
