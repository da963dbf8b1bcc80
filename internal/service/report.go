package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"audiosummarizer/internal/model"
	"audiosummarizer/internal/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var (
	// ErrLocatorRequired reports a summarize request missing one of its
	// input locators.
	ErrLocatorRequired = errors.New("audio and template locators are required")
	// ErrIDRequired reports a job lookup with an empty id.
	ErrIDRequired = errors.New("job id is required")
	// ErrJobNotFound reports a job that does not exist or belongs to a
	// different user.
	ErrJobNotFound = errors.New("job not found")
)

// ReportService is the summarization use case: it owns job bookkeeping,
// input/output transfer, and the processing pipeline.
type ReportService interface {
	// Summarize runs the full flow for one request and returns the completed
	// job. Every request leaves a job row behind; failures are recorded on
	// the row before the error is returned.
	Summarize(ctx context.Context, userID, audioLocator, templateLocator string) (*model.Job, error)

	// ListJobs returns the user's jobs, newest first.
	ListJobs(ctx context.Context, userID string, limit, offset int) (*repository.PageResult[model.Job], error)

	// GetJob returns one of the user's jobs by id. A job owned by someone
	// else is reported as not found.
	GetJob(ctx context.Context, userID, id string) (*model.Job, error)
}

type reportService struct {
	transfer Transfer
	pipeline Pipeline
	jobRepo  repository.JobRepository
}

// NewReportService wires the transfer layer, pipeline, and job repository
// into a ReportService.
func NewReportService(transfer Transfer, pipeline Pipeline, jobRepo repository.JobRepository) ReportService {
	return &reportService{
		transfer: transfer,
		pipeline: pipeline,
		jobRepo:  jobRepo,
	}
}

func (s *reportService) Summarize(ctx context.Context, userID, audioLocator, templateLocator string) (*model.Job, error) {
	if audioLocator == "" || templateLocator == "" {
		return nil, ErrLocatorRequired
	}

	now := time.Now().UTC()
	job, err := s.jobRepo.Create(ctx, &model.Job{
		ID:              uuid.NewString(),
		UserID:          userID,
		AudioLocator:    audioLocator,
		TemplateLocator: templateLocator,
		Status:          model.JobStatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	reportLocator, err := s.process(ctx, userID, audioLocator, templateLocator)
	if err != nil {
		if markErr := s.jobRepo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			return nil, fmt.Errorf("%w (also failed to record failure: %v)", err, markErr)
		}
		return nil, err
	}

	if err := s.jobRepo.MarkCompleted(ctx, job.ID, reportLocator); err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}

	job.ReportLocator = reportLocator
	job.Status = model.JobStatusCompleted
	return job, nil
}

// process resolves both inputs, runs the pipeline, and publishes the report.
// All local files are request-scoped temporaries and are removed before
// returning, on every path.
func (s *reportService) process(ctx context.Context, userID, audioLocator, templateLocator string) (string, error) {
	audioPath, err := s.transfer.ResolveInput(ctx, audioLocator)
	if err != nil {
		return "", fmt.Errorf("resolve audio: %w", err)
	}
	defer CleanupInput(audioPath)

	templatePath, err := s.transfer.ResolveInput(ctx, templateLocator)
	if err != nil {
		return "", fmt.Errorf("resolve template: %w", err)
	}
	defer CleanupInput(templatePath)

	outputDir, err := os.MkdirTemp("", "report-")
	if err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	reportPath, err := s.pipeline.Run(ctx, audioPath, templatePath, outputDir)
	if err != nil {
		return "", err
	}

	locator, err := s.transfer.PublishOutput(ctx, reportPath, userID)
	if err != nil {
		return "", fmt.Errorf("publish report: %w", err)
	}

	return locator, nil
}

func (s *reportService) ListJobs(ctx context.Context, userID string, limit, offset int) (*repository.PageResult[model.Job], error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.jobRepo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return res, nil
}

func (s *reportService) GetJob(ctx context.Context, userID, id string) (*model.Job, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}

	// Ownership is part of the lookup: someone else's job looks identical to
	// a missing one.
	if job.UserID != userID {
		return nil, ErrJobNotFound
	}

	return job, nil
}
