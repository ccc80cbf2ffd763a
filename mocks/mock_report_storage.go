package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careflow/internal/port"
)

// MockReportStorage is a mock implementation of port.ReportStorage.
type MockReportStorage struct {
	mock.Mock
}

func (m *MockReportStorage) Upload(ctx context.Context, upload port.ReportUpload) (*port.StoredReport, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoredReport), args.Error(1)
}

func (m *MockReportStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockReportStorage) PresignDownload(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}
