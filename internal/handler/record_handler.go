package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careflow/internal/service"
)

// RecordHandler handles discharge record and review workflow endpoints.
type RecordHandler struct {
	reviewService service.ReviewService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(reviewService service.ReviewService) *RecordHandler {
	return &RecordHandler{reviewService: reviewService}
}

// reviewInput is the request body for approve and reject actions.
type reviewInput struct {
	Notes string `json:"notes"`
}

// ListByReport handles GET /api/v1/reports/:id/records
func (h *RecordHandler) ListByReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return
	}

	offset, limit := pagination(c)
	records, total, err := h.reviewService.ListByReport(c.Request.Context(), reportID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/records/:id
func (h *RecordHandler) GetByID(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	record, err := h.reviewService.GetRecord(c.Request.Context(), recordID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// ReviewQueue handles GET /api/v1/records/review-queue
func (h *RecordHandler) ReviewQueue(c *gin.Context) {
	offset, limit := pagination(c)

	records, total, err := h.reviewService.Queue(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Approve handles POST /api/v1/records/:id/approve
func (h *RecordHandler) Approve(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input reviewInput
	_ = c.ShouldBindJSON(&input) // notes are optional

	record, err := h.reviewService.Approve(c.Request.Context(), recordID, userID, input.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// Reject handles POST /api/v1/records/:id/reject
func (h *RecordHandler) Reject(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input reviewInput
	_ = c.ShouldBindJSON(&input)

	record, err := h.reviewService.Reject(c.Request.Context(), recordID, userID, input.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// Amend handles POST /api/v1/records/:id/amend
func (h *RecordHandler) Amend(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.AmendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	record, err := h.reviewService.Amend(c.Request.Context(), recordID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// AuditTrail handles GET /api/v1/records/:id/audit
func (h *RecordHandler) AuditTrail(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	entries, err := h.reviewService.AuditTrail(c.Request.Context(), recordID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}
