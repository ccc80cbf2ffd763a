package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careflow/internal/domain"
)

// MockIngestService is a mock implementation of service.IngestService.
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) IngestReport(ctx context.Context, report *domain.ReportFile, maxRetries int) {
	m.Called(ctx, report, maxRetries)
}
