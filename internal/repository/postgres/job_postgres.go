package postgres

import (
	"context"
	"database/sql"

	"audiosummarizer/internal/model"
	"audiosummarizer/internal/repository"
)

// JobPostgres is a PostgreSQL implementation of repository.JobRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type JobPostgres struct {
	db *sql.DB
}

// NewJobPostgres creates a new JobPostgres repository.
func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobRepository = (*JobPostgres)(nil)

const jobColumns = `id, user_id, audio_locator, template_locator, report_locator, status, error, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*model.Job, error) {
	var j model.Job
	if err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.AudioLocator,
		&j.TemplateLocator,
		&j.ReportLocator,
		&j.Status,
		&j.Error,
		&j.CreatedAt,
		&j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &j, nil
}

// Create inserts a new job row and returns the stored record.
func (r *JobPostgres) Create(ctx context.Context, job *model.Job) (*model.Job, error) {
	const q = `
		INSERT INTO jobs (id, user_id, audio_locator, template_locator, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + jobColumns
	row := r.db.QueryRowContext(ctx, q,
		job.ID,
		job.UserID,
		job.AudioLocator,
		job.TemplateLocator,
		job.Status,
		job.CreatedAt,
	)
	return scanJob(row)
}

// MarkCompleted records the report locator and moves the job to completed.
func (r *JobPostgres) MarkCompleted(ctx context.Context, id, reportLocator string) error {
	const q = `
		UPDATE jobs
		SET status = $2, report_locator = $3, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, model.JobStatusCompleted, reportLocator)
	return err
}

// MarkFailed records the failure message and moves the job to failed.
func (r *JobPostgres) MarkFailed(ctx context.Context, id, message string) error {
	const q = `
		UPDATE jobs
		SET status = $2, error = $3, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, model.JobStatusFailed, message)
	return err
}

// FindByID fetches a single job by its ID.
func (r *JobPostgres) FindByID(ctx context.Context, id string) (*model.Job, error) {
	const q = `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = $1
	`
	return scanJob(r.db.QueryRowContext(ctx, q, id))
}

// ListByUser returns the user's jobs using LIMIT/OFFSET pagination and a total count.
func (r *JobPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Job], error) {
	const qCount = `SELECT COUNT(*) FROM jobs WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Job]{
		Items: items,
		Total: total,
	}, nil
}
