package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"careflow/internal/domain"
)

// MockDischargeRecordRepo is a mock implementation of port.DischargeRecordRepository.
type MockDischargeRecordRepo struct {
	mock.Mock
}

func (m *MockDischargeRecordRepo) CreateBatch(ctx context.Context, records []domain.DischargeRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockDischargeRecordRepo) GetByID(ctx context.Context, recordID uuid.UUID) (*domain.DischargeRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DischargeRecord), args.Error(1)
}

func (m *MockDischargeRecordRepo) ListByReport(ctx context.Context, reportID uuid.UUID, offset, limit int) ([]domain.DischargeRecord, int, error) {
	args := m.Called(ctx, reportID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DischargeRecord), args.Int(1), args.Error(2)
}

func (m *MockDischargeRecordRepo) ListReviewQueue(ctx context.Context, maxConfidence float64, offset, limit int) ([]domain.DischargeRecord, int, error) {
	args := m.Called(ctx, maxConfidence, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DischargeRecord), args.Int(1), args.Error(2)
}

func (m *MockDischargeRecordRepo) UpdateReview(ctx context.Context, record *domain.DischargeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDischargeRecordRepo) UpdateFields(ctx context.Context, record *domain.DischargeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
