package db

import (
	"context"
	"database/sql"
	"fmt"
)

// RecordApplication inserts an application row and returns its ID. Status
// starts as "applied".
func (db *DB) RecordApplication(ctx context.Context, app Application) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO applications (job_id, variant_id, method, url, cover_letter_path, notes, status)
		 VALUES (?, ?, ?, ?, ?, ?, 'applied')`,
		app.JobID, nullIfEmpty(app.VariantID), app.Method, app.URL, app.CoverLetterPath, app.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read application id: %w", err)
	}
	return id, nil
}

// UpdateApplicationStatus advances an application through the funnel and
// stamps the transition time.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE applications SET status = ?, status_updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListApplications returns applications for one job, or all when jobID is 0,
// newest first.
func (db *DB) ListApplications(ctx context.Context, jobID int64) ([]Application, error) {
	query := `SELECT id, job_id, COALESCE(variant_id, ''), applied_date, method, url,
	                 cover_letter_path, status, notes, status_updated_at
	          FROM applications`
	var args []any
	if jobID != 0 {
		query += ` WHERE job_id = ?`
		args = append(args, jobID)
	}
	query += ` ORDER BY applied_date DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.VariantID, &a.AppliedDate, &a.Method, &a.URL,
			&a.CoverLetterPath, &a.Status, &a.Notes, &a.StatusUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ActiveApplications returns applications still in play (not rejected or
// withdrawn), joined with their jobs, newest first.
func (db *DB) ActiveApplications(ctx context.Context) ([]ActiveApplication, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, company, job_title, COALESCE(variant_id, ''), applied_date,
		        method, status, status_updated_at
		 FROM active_applications ORDER BY applied_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active applications: %w", err)
	}
	defer rows.Close()

	var out []ActiveApplication
	for rows.Next() {
		var a ActiveApplication
		if err := rows.Scan(&a.ID, &a.Company, &a.JobTitle, &a.VariantID, &a.AppliedDate,
			&a.Method, &a.Status, &a.StatusUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan active application: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
