package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"audiosummarizer/internal/model"
	"audiosummarizer/internal/repository"
)

type MockTransfer struct {
	mock.Mock
}

func (m *MockTransfer) ResolveInput(ctx context.Context, locator string) (string, error) {
	args := m.Called(ctx, locator)
	return args.String(0), args.Error(1)
}

func (m *MockTransfer) PublishOutput(ctx context.Context, localPath, userID string) (string, error) {
	args := m.Called(ctx, localPath, userID)
	return args.String(0), args.Error(1)
}

type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Run(ctx context.Context, audioPath, templatePath, outputDir string) (string, error) {
	args := m.Called(ctx, audioPath, templatePath, outputDir)
	if f, ok := args.Get(0).(func(context.Context, string, string, string) string); ok {
		return f(ctx, audioPath, templatePath, outputDir), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summarize(ctx context.Context, userID, audioLocator, templateLocator string) (*model.Job, error) {
	args := m.Called(ctx, userID, audioLocator, templateLocator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockReportService) ListJobs(ctx context.Context, userID string, limit, offset int) (*repository.PageResult[model.Job], error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Job]), args.Error(1)
}

func (m *MockReportService) GetJob(ctx context.Context, userID, id string) (*model.Job, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}
