package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careflow/internal/config"
	"careflow/internal/domain"
	"careflow/internal/service"
	"careflow/mocks"
)

func newReviewFixture() (*mocks.MockDischargeRecordRepo, *mocks.MockRecordAuditRepo, service.ReviewService) {
	recordRepo := new(mocks.MockDischargeRecordRepo)
	auditRepo := new(mocks.MockRecordAuditRepo)
	svc := service.NewReviewService(recordRepo, auditRepo, config.ReviewConfig{ConfidenceThreshold: 0.8})
	return recordRepo, auditRepo, svc
}

func pendingRecord() *domain.DischargeRecord {
	phone := "555-123-4567"
	return &domain.DischargeRecord{
		ID:           uuid.New(),
		ReportFileID: uuid.New(),
		PatientName:  "Doe, Jane",
		RecordCode:   "EP123456789",
		PhoneNumber:  &phone,
		EventDate:    "01-15-2024",
		Payer:        "Medicare",
		Outcome:      "Home",
		Confidence:   0.7,
		ReviewStatus: domain.ReviewStatusPending,
	}
}

func TestReview_ApprovePendingRecord(t *testing.T) {
	recordRepo, auditRepo, svc := newReviewFixture()
	record := pendingRecord()
	reviewer := uuid.New()

	recordRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	recordRepo.On("UpdateReview", mock.Anything, record).Return(nil)
	auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*domain.RecordAuditEntry")).Return(nil)

	result, err := svc.Approve(context.Background(), record.ID, reviewer, "looks right")
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewStatusApproved, result.ReviewStatus)
	require.NotNil(t, result.ReviewedBy)
	assert.Equal(t, reviewer, *result.ReviewedBy)
	assert.NotNil(t, result.ReviewedAt)
	assert.Equal(t, "looks right", result.ReviewerNotes)

	auditRepo.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *domain.RecordAuditEntry) bool {
		return e.Action == domain.AuditActionApproved && e.Actor == reviewer && e.RecordID == record.ID
	}))
}

func TestReview_RejectPendingRecord(t *testing.T) {
	recordRepo, auditRepo, svc := newReviewFixture()
	record := pendingRecord()
	reviewer := uuid.New()

	recordRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	recordRepo.On("UpdateReview", mock.Anything, record).Return(nil)
	auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*domain.RecordAuditEntry")).Return(nil)

	result, err := svc.Reject(context.Background(), record.ID, reviewer, "garbled row")
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusRejected, result.ReviewStatus)
}

func TestReview_ApproveAlreadyReviewed(t *testing.T) {
	recordRepo, _, svc := newReviewFixture()
	record := pendingRecord()
	record.ReviewStatus = domain.ReviewStatusApproved

	recordRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	_, err := svc.Approve(context.Background(), record.ID, uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidReviewAction)
	recordRepo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything)
}

func TestReview_AmendUpdatesFieldsAndAudits(t *testing.T) {
	recordRepo, auditRepo, svc := newReviewFixture()
	record := pendingRecord()
	reviewer := uuid.New()

	recordRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	recordRepo.On("UpdateFields", mock.Anything, record).Return(nil)
	recordRepo.On("UpdateReview", mock.Anything, record).Return(nil)
	auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*domain.RecordAuditEntry")).Return(nil)

	name := "Doe, Janet"
	outcome := "Rehab"
	result, err := svc.Amend(context.Background(), record.ID, reviewer, service.AmendInput{
		PatientName: &name,
		Outcome:     &outcome,
		ClearPhone:  true,
		Notes:       "corrected against the source PDF",
	})
	require.NoError(t, err)

	assert.Equal(t, "Doe, Janet", result.PatientName)
	assert.Equal(t, "Rehab", result.Outcome)
	assert.Nil(t, result.PhoneNumber)
	assert.False(t, result.PhoneVerified)
	assert.Equal(t, domain.ReviewStatusAmended, result.ReviewStatus)
	assert.Equal(t, "corrected against the source PDF", result.ReviewerNotes)

	auditRepo.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *domain.RecordAuditEntry) bool {
		return e.Action == domain.AuditActionAmended && len(e.OldValues) > 0 && len(e.NewValues) > 0
	}))
}

func TestReview_AmendAlreadyReviewed(t *testing.T) {
	recordRepo, _, svc := newReviewFixture()
	record := pendingRecord()
	record.ReviewStatus = domain.ReviewStatusRejected

	recordRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	_, err := svc.Amend(context.Background(), record.ID, uuid.New(), service.AmendInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidReviewAction)
}

func TestReview_QueueUsesConfiguredThreshold(t *testing.T) {
	recordRepo, _, svc := newReviewFixture()

	recordRepo.On("ListReviewQueue", mock.Anything, 0.8, 0, 20).
		Return([]domain.DischargeRecord{}, 0, nil)

	_, _, err := svc.Queue(context.Background(), 0, 20)
	require.NoError(t, err)
	recordRepo.AssertCalled(t, "ListReviewQueue", mock.Anything, 0.8, 0, 20)
}
