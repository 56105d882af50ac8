package db

// schema is applied on every open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    company         TEXT NOT NULL,
    job_title       TEXT NOT NULL,
    job_description TEXT NOT NULL DEFAULT '',
    jd_file_path    TEXT NOT NULL DEFAULT '',
    job_url         TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL DEFAULT 'active',
    created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS variants (
    variant_id             TEXT PRIMARY KEY,
    job_id                 INTEGER NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
    base_resume_path       TEXT NOT NULL DEFAULT '',
    latex_path             TEXT NOT NULL DEFAULT '',
    pdf_path               TEXT NOT NULL DEFAULT '',
    metadata_path          TEXT NOT NULL DEFAULT '',
    target_bullets         INTEGER NOT NULL DEFAULT 0,
    ai_enhancement_enabled INTEGER NOT NULL DEFAULT 0,
    bullets_enhanced       INTEGER NOT NULL DEFAULT 0,
    total_bullets          INTEGER NOT NULL DEFAULT 0,
    keywords_added         TEXT NOT NULL DEFAULT '[]',
    generated_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ats_scores (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    variant_id       TEXT NOT NULL REFERENCES variants(variant_id) ON DELETE CASCADE,
    overall_score    REAL NOT NULL,
    keyword_score    REAL NOT NULL DEFAULT 0,
    format_score     REAL NOT NULL DEFAULT 0,
    experience_score REAL NOT NULL DEFAULT 0,
    required_found   INTEGER NOT NULL DEFAULT 0,
    required_total   INTEGER NOT NULL DEFAULT 0,
    optional_found   INTEGER NOT NULL DEFAULT 0,
    missing_keywords TEXT NOT NULL DEFAULT '[]',
    recommendations  TEXT NOT NULL DEFAULT '[]',
    scored_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS applications (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id            INTEGER NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
    variant_id        TEXT REFERENCES variants(variant_id) ON DELETE SET NULL,
    applied_date      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    method            TEXT NOT NULL DEFAULT '',
    url               TEXT NOT NULL DEFAULT '',
    cover_letter_path TEXT NOT NULL DEFAULT '',
    status            TEXT NOT NULL DEFAULT 'applied',
    notes             TEXT NOT NULL DEFAULT '',
    status_updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_variants_job_id      ON variants(job_id);
CREATE INDEX IF NOT EXISTS idx_ats_scores_variant   ON ats_scores(variant_id);
CREATE INDEX IF NOT EXISTS idx_applications_job_id  ON applications(job_id);

CREATE VIEW IF NOT EXISTS active_applications AS
    SELECT a.id, j.company, j.job_title, a.variant_id, a.applied_date,
           a.method, a.status, a.status_updated_at
    FROM applications a
    JOIN jobs j ON j.id = a.job_id
    WHERE a.status NOT IN ('rejected', 'withdrawn');

CREATE VIEW IF NOT EXISTS job_pipeline AS
    SELECT j.id, j.company, j.job_title, j.status, j.created_at,
           COUNT(DISTINCT v.variant_id) AS variant_count,
           COUNT(DISTINCT a.id)         AS application_count,
           MAX(s.overall_score)         AS best_score
    FROM jobs j
    LEFT JOIN variants v     ON v.job_id = j.id
    LEFT JOIN applications a ON a.job_id = j.id
    LEFT JOIN ats_scores s   ON s.variant_id = v.variant_id
    GROUP BY j.id;
`
