package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// UpsertJob inserts the job or, when a job with the same company and title
// already exists, refreshes its description and links. Returns the job ID.
func (db *DB) UpsertJob(ctx context.Context, job Job) (int64, error) {
	existing, err := db.GetJobByCompanyAndTitle(ctx, job.Company, job.JobTitle)

	switch {
	case err == nil:
		_, err = db.conn.ExecContext(ctx,
			`UPDATE jobs SET job_description = ?, jd_file_path = ?, job_url = ? WHERE id = ?`,
			job.JobDescription, job.JDFilePath, job.JobURL, existing.ID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to update job: %w", err)
		}
		return existing.ID, nil

	case errors.Is(err, ErrNotFound):
		res, err := db.conn.ExecContext(ctx,
			`INSERT INTO jobs (company, job_title, job_description, jd_file_path, job_url, status)
			 VALUES (?, ?, ?, ?, ?, 'active')`,
			job.Company, job.JobTitle, job.JobDescription, job.JDFilePath, job.JobURL,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert job: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read job id: %w", err)
		}
		return id, nil

	default:
		return 0, fmt.Errorf("failed to look up job: %w", err)
	}
}

// GetJobByCompanyAndTitle returns the newest job for the company and title
// pair.
func (db *DB) GetJobByCompanyAndTitle(ctx context.Context, company, title string) (*Job, error) {
	return db.getJobWhere(ctx,
		`company = ? AND job_title = ? ORDER BY created_at DESC LIMIT 1`, company, title)
}

// GetJobByURL returns the newest job recorded for a posting URL.
func (db *DB) GetJobByURL(ctx context.Context, url string) (*Job, error) {
	return db.getJobWhere(ctx,
		`job_url = ? ORDER BY created_at DESC LIMIT 1`, url)
}

func (db *DB) getJobWhere(ctx context.Context, where string, args ...any) (*Job, error) {
	var j Job
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, company, job_title, job_description, jd_file_path, job_url, status, created_at
		 FROM jobs WHERE `+where, args...,
	).Scan(&j.ID, &j.Company, &j.JobTitle, &j.JobDescription, &j.JDFilePath, &j.JobURL, &j.Status, &j.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up job: %w", err)
	}
	return &j, nil
}

// GetJob fetches one job by ID.
func (db *DB) GetJob(ctx context.Context, id int64) (*Job, error) {
	var j Job
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, company, job_title, job_description, jd_file_path, job_url, status, created_at
		 FROM jobs WHERE id = ?`, id,
	).Scan(&j.ID, &j.Company, &j.JobTitle, &j.JobDescription, &j.JDFilePath, &j.JobURL, &j.Status, &j.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobs returns all jobs, newest first.
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, company, job_title, job_description, jd_file_path, job_url, status, created_at
		 FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Company, &j.JobTitle, &j.JobDescription, &j.JDFilePath, &j.JobURL, &j.Status, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// SetJobStatus updates a job's lifecycle status.
func (db *DB) SetJobStatus(ctx context.Context, id int64, status string) error {
	res, err := db.conn.ExecContext(ctx, `UPDATE jobs SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set job status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
