package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(context.Background(), filepath.Join(t.TempDir(), "tailor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpenAppliesSchema(t *testing.T) {
	database := testDB(t)
	require.NoError(t, database.Ping(context.Background()))

	// Opening twice must be idempotent.
	require.NoError(t, database.Close())
	again, err := Open(context.Background(), filepath.Join(t.TempDir(), "tailor.db"))
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestUpsertJobDeduplicates(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	first, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "Platform Engineer", JobDescription: "v1"})
	require.NoError(t, err)

	second, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "Platform Engineer", JobDescription: "v2"})
	require.NoError(t, err)
	assert.Equal(t, first, second, "same company and title reuse the job row")

	job, err := database.GetJob(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "v2", job.JobDescription)

	other, err := database.UpsertJob(ctx, Job{Company: "Initech", JobTitle: "Platform Engineer"})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	jobs, err := database.ListJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestAddVariantWithScore(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	jobID, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "SRE"})
	require.NoError(t, err)

	v := VariantRecord{
		VariantID:     "1a2b3c4d",
		JobID:         jobID,
		LatexPath:     "/out/resume.tex",
		TargetBullets: 18,
		AIEnabled:     true,
		Enhanced:      3,
		TotalBullets:  17,
		KeywordsAdded: []string{"kafka", "terraform"},
	}
	score := &ScoreRecord{
		OverallScore:    78.5,
		KeywordScore:    80,
		FormatScore:     90,
		ExperienceScore: 70,
		RequiredFound:   8,
		RequiredTotal:   10,
		MissingKeywords: []string{"grafana"},
		Recommendations: []string{"Add 'grafana' - appears 4 times in job description"},
	}
	require.NoError(t, database.AddVariantWithScore(ctx, v, score))

	got, err := database.GetVariant(ctx, "1a2b3c4d")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "SRE", got.JobTitle)
	assert.Equal(t, []string{"kafka", "terraform"}, got.KeywordsAdded)
	require.NotNil(t, got.Score)
	assert.InDelta(t, 78.5, *got.Score, 0.001)

	latest, err := database.LatestScore(ctx, "1a2b3c4d")
	require.NoError(t, err)
	assert.Equal(t, []string{"grafana"}, latest.MissingKeywords)
	assert.Equal(t, 8, latest.RequiredFound)
}

func TestVariantWithoutScore(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	jobID, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "SRE"})
	require.NoError(t, err)
	require.NoError(t, database.AddVariantWithScore(ctx, VariantRecord{VariantID: "aaaa1111", JobID: jobID}, nil))

	got, err := database.GetVariant(ctx, "aaaa1111")
	require.NoError(t, err)
	assert.Nil(t, got.Score)

	_, err = database.LatestScore(ctx, "aaaa1111")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteVariant(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	jobID, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "SRE"})
	require.NoError(t, err)
	require.NoError(t, database.SaveVariant(ctx, VariantRecord{VariantID: "aaaa1111", JobID: jobID}))

	require.NoError(t, database.DeleteVariant(ctx, "aaaa1111"))
	_, err = database.GetVariant(ctx, "aaaa1111")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, database.DeleteVariant(ctx, "aaaa1111"), ErrNotFound)
}

func TestApplications(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	jobID, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "SRE"})
	require.NoError(t, err)

	appID, err := database.RecordApplication(ctx, Application{JobID: jobID, Method: "referral"})
	require.NoError(t, err)

	apps, err := database.ListApplications(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "applied", apps[0].Status)

	require.NoError(t, database.UpdateApplicationStatus(ctx, appID, "interviewing"))
	apps, err = database.ListApplications(ctx, 0)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "interviewing", apps[0].Status)

	assert.ErrorIs(t, database.UpdateApplicationStatus(ctx, 9999, "rejected"), ErrNotFound)
}

func TestStats(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	jobID, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "SRE"})
	require.NoError(t, err)
	require.NoError(t, database.AddVariantWithScore(ctx,
		VariantRecord{VariantID: "aaaa1111", JobID: jobID},
		&ScoreRecord{OverallScore: 70}))
	require.NoError(t, database.AddVariantWithScore(ctx,
		VariantRecord{VariantID: "bbbb2222", JobID: jobID},
		&ScoreRecord{OverallScore: 80.5}))
	_, err = database.RecordApplication(ctx, Application{JobID: jobID})
	require.NoError(t, err)

	stats, err := database.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalJobs)
	assert.Equal(t, 2, stats.TotalVariants)
	assert.Equal(t, 1, stats.TotalApplications)
	assert.Equal(t, map[string]int{"applied": 1}, stats.ApplicationsByStatus)
	assert.InDelta(t, 75.25, stats.AverageOverallScore, 0.001)
}

func TestJobLookups(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	id, err := database.UpsertJob(ctx, Job{
		Company:  "Acme",
		JobTitle: "SRE",
		JobURL:   "https://boards.example.com/acme/sre",
	})
	require.NoError(t, err)

	byPair, err := database.GetJobByCompanyAndTitle(ctx, "Acme", "SRE")
	require.NoError(t, err)
	assert.Equal(t, id, byPair.ID)

	byURL, err := database.GetJobByURL(ctx, "https://boards.example.com/acme/sre")
	require.NoError(t, err)
	assert.Equal(t, id, byURL.ID)

	_, err = database.GetJobByCompanyAndTitle(ctx, "Acme", "CTO")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = database.GetJobByURL(ctx, "https://nowhere.example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActiveApplications(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	jobID, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "SRE"})
	require.NoError(t, err)

	keep, err := database.RecordApplication(ctx, Application{JobID: jobID, Method: "portal"})
	require.NoError(t, err)
	drop, err := database.RecordApplication(ctx, Application{JobID: jobID})
	require.NoError(t, err)
	require.NoError(t, database.UpdateApplicationStatus(ctx, drop, "rejected"))

	active, err := database.ActiveApplications(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep, active[0].ID)
	assert.Equal(t, "Acme", active[0].Company)
	assert.Equal(t, "applied", active[0].Status)
}

func TestJobPipeline(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	jobID, err := database.UpsertJob(ctx, Job{Company: "Acme", JobTitle: "SRE"})
	require.NoError(t, err)
	emptyID, err := database.UpsertJob(ctx, Job{Company: "Initech", JobTitle: "SWE"})
	require.NoError(t, err)

	require.NoError(t, database.AddVariantWithScore(ctx,
		VariantRecord{VariantID: "aaaa1111", JobID: jobID}, &ScoreRecord{OverallScore: 70}))
	require.NoError(t, database.AddVariantWithScore(ctx,
		VariantRecord{VariantID: "bbbb2222", JobID: jobID}, &ScoreRecord{OverallScore: 82}))
	_, err = database.RecordApplication(ctx, Application{JobID: jobID, VariantID: "bbbb2222"})
	require.NoError(t, err)

	pipeline, err := database.JobPipeline(ctx)
	require.NoError(t, err)
	require.Len(t, pipeline, 2)

	byCompany := map[string]PipelineRow{}
	for _, row := range pipeline {
		byCompany[row.Company] = row
	}

	acme := byCompany["Acme"]
	assert.Equal(t, 2, acme.VariantCount)
	assert.Equal(t, 1, acme.ApplicationCount)
	require.NotNil(t, acme.BestScore)
	assert.InDelta(t, 82, *acme.BestScore, 0.001)

	initech := byCompany["Initech"]
	assert.Equal(t, emptyID, initech.JobID)
	assert.Equal(t, 0, initech.VariantCount)
	assert.Nil(t, initech.BestScore)
}
