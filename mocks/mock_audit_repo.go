package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"careflow/internal/domain"
)

// MockRecordAuditRepo is a mock implementation of port.RecordAuditRepository.
type MockRecordAuditRepo struct {
	mock.Mock
}

func (m *MockRecordAuditRepo) Append(ctx context.Context, entry *domain.RecordAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRecordAuditRepo) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]domain.RecordAuditEntry, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecordAuditEntry), args.Error(1)
}
