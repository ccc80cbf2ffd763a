package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"careflow/internal/domain"
)

// MockReportFileRepo is a mock implementation of port.ReportFileRepository.
type MockReportFileRepo struct {
	mock.Mock
}

func (m *MockReportFileRepo) Create(ctx context.Context, report *domain.ReportFile) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportFileRepo) GetByID(ctx context.Context, reportID uuid.UUID) (*domain.ReportFile, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

func (m *MockReportFileRepo) List(ctx context.Context, offset, limit int) ([]domain.ReportFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportFile), args.Int(1), args.Error(2)
}

func (m *MockReportFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ReportFile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportFile), args.Error(1)
}

func (m *MockReportFileRepo) Requeue(ctx context.Context, reportID uuid.UUID, ingestError string) error {
	args := m.Called(ctx, reportID, ingestError)
	return args.Error(0)
}

func (m *MockReportFileRepo) UpdateIngestResult(ctx context.Context, report *domain.ReportFile) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
