package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"careflow/internal/domain"
	"careflow/internal/service"
	"careflow/mocks"
)

func TestIngestQueueWorker_PollsAndDispatches(t *testing.T) {
	reportRepo := new(mocks.MockReportFileRepo)
	ingestSvc := new(mocks.MockIngestService)

	report := domain.ReportFile{
		ID:             uuid.New(),
		IngestStatus:   domain.IngestStatusProcessing,
		IngestAttempts: 0,
	}

	// First poll returns one report, subsequent polls return empty
	reportRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReportFile{report}, nil).Once()
	reportRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReportFile{}, nil).Maybe()

	ingestSvc.On("IngestReport", mock.Anything, mock.AnythingOfType("*domain.ReportFile"), 3).
		Return().Maybe()

	cfg := service.IngestQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}
	worker := service.NewIngestQueueWorker(reportRepo, ingestSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	reportRepo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	ingestSvc.AssertCalled(t, "IngestReport", mock.Anything, mock.AnythingOfType("*domain.ReportFile"), 3)
}

func TestIngestQueueWorker_RespectsConcurrencyCap(t *testing.T) {
	reportRepo := new(mocks.MockReportFileRepo)
	ingestSvc := new(mocks.MockIngestService)

	cfg := service.IngestQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}

	reportRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReportFile{}, nil).Maybe()

	worker := service.NewIngestQueueWorker(reportRepo, ingestSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	// Verify ClaimQueued was called with limit <= concurrency
	for _, call := range reportRepo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
		}
	}
}

func TestIngestQueueWorker_CleanShutdown(t *testing.T) {
	reportRepo := new(mocks.MockReportFileRepo)
	ingestSvc := new(mocks.MockIngestService)

	reportRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReportFile{}, nil).Maybe()

	cfg := service.IngestQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  5,
	}
	worker := service.NewIngestQueueWorker(reportRepo, ingestSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(120 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down after context cancellation")
	}
}

func TestIngestQueueWorker_IncrementsAttemptBeforeDispatch(t *testing.T) {
	reportRepo := new(mocks.MockReportFileRepo)
	ingestSvc := new(mocks.MockIngestService)

	report := domain.ReportFile{ID: uuid.New(), IngestAttempts: 1}

	reportRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReportFile{report}, nil).Once()
	reportRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReportFile{}, nil).Maybe()

	dispatched := make(chan int, 1)
	ingestSvc.On("IngestReport", mock.Anything, mock.AnythingOfType("*domain.ReportFile"), 3).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*domain.ReportFile)
			select {
			case dispatched <- r.IngestAttempts:
			default:
			}
		}).Return().Maybe()

	cfg := service.IngestQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}
	worker := service.NewIngestQueueWorker(reportRepo, ingestSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	select {
	case attempts := <-dispatched:
		assert.Equal(t, 2, attempts)
	case <-time.After(2 * time.Second):
		t.Fatal("report was never dispatched")
	}

	cancel()
	<-done
}
