package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"audiosummarizer/internal/model"
	"audiosummarizer/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var jobCols = []string{"id", "user_id", "audio_locator", "template_locator", "report_locator", "status", "error", "created_at", "updated_at"}

func TestJobPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	job := &model.Job{
		ID:              "test-uuid",
		UserID:          "user123",
		AudioLocator:    "s3://bucket/audio/intro.mp3",
		TemplateLocator: "s3://bucket/templates/default.docx",
		Status:          model.JobStatusProcessing,
		CreatedAt:       now,
	}

	rows := sqlmock.NewRows(jobCols).
		AddRow(job.ID, job.UserID, job.AudioLocator, job.TemplateLocator, "", job.Status, "", now, now)

	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(job.ID, job.UserID, job.AudioLocator, job.TemplateLocator, job.Status, job.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, job)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, job.ID, result.ID)
	assert.Equal(t, model.JobStatusProcessing, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostgres_MarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)

	mock.ExpectExec("UPDATE jobs").
		WithArgs("test-id", model.JobStatusCompleted, "s3://bucket/reports/user123/intro_report.docx").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkCompleted(context.Background(), "test-id", "s3://bucket/reports/user123/intro_report.docx")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostgres_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)

	mock.ExpectExec("UPDATE jobs").
		WithArgs("test-id", model.JobStatusFailed, "transcription service error").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkFailed(context.Background(), "test-id", "transcription service error")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(jobCols).
			AddRow("test-id", "user123", "s3://b/a.mp3", "s3://b/t.docx", "", model.JobStatusProcessing, "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		job, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, job)
		assert.Equal(t, "test-id", job.ID)
		assert.Equal(t, "user123", job.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		job, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, job)
	})
}

func TestJobPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM jobs WHERE user_id = ?").
		WithArgs("user123").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(jobCols).
		AddRow("test-id", "user123", "s3://b/a.mp3", "s3://b/t.docx", "s3://b/r.docx", model.JobStatusCompleted, "", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE user_id = (.+) ORDER BY").
		WithArgs("user123", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListByUser(ctx, "user123", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, model.JobStatusCompleted, res.Items[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
