package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careflow/internal/domain"
)

// MockLookupRepo is a mock implementation of port.LookupRepository.
type MockLookupRepo struct {
	mock.Mock
}

func (m *MockLookupRepo) FindPhone(ctx context.Context, phone string) (*domain.PhoneDirectoryEntry, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PhoneDirectoryEntry), args.Error(1)
}

func (m *MockLookupRepo) FindPayerPlan(ctx context.Context, payerName string) (*domain.PayerPlan, error) {
	args := m.Called(ctx, payerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayerPlan), args.Error(1)
}
