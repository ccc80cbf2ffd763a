package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careflow/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReviewAlert(ctx context.Context, to []string, alert port.ReviewAlert) error {
	args := m.Called(ctx, to, alert)
	return args.Error(0)
}
