package repository

import (
	"context"

	"audiosummarizer/internal/model"
)

// JobRepository defines data access for summarization jobs using SQL queries only.
// No business logic here, strictly persistence operations.
type JobRepository interface {
	// Create inserts a new job record and returns the stored row
	// (may include values set by database defaults).
	Create(ctx context.Context, job *model.Job) (*model.Job, error)

	// MarkCompleted transitions a job to completed and records the report locator.
	MarkCompleted(ctx context.Context, id, reportLocator string) error

	// MarkFailed transitions a job to failed and records the failure message.
	MarkFailed(ctx context.Context, id, message string) error

	// FindByID returns a job by its ID.
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// ListByUser returns a paginated list of the user's jobs and the total count.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Job], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
