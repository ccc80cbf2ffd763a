package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careflow/internal/domain"
	"careflow/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"inactive user", domain.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"unsupported file type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"upload failed", domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{"report not found", domain.ErrReportNotFound, http.StatusNotFound, "REPORT_NOT_FOUND"},
		{"report not ingested", domain.ErrReportNotIngested, http.StatusBadRequest, "REPORT_NOT_INGESTED"},
		{"record not found", domain.ErrRecordNotFound, http.StatusNotFound, "RECORD_NOT_FOUND"},
		{"review conflict", domain.ErrInvalidReviewAction, http.StatusConflict, "INVALID_REVIEW_ACTION"},
		{"extraction failed", domain.ErrTextExtraction, http.StatusUnprocessableEntity, "TEXT_EXTRACTION_FAILED"},
		{"wrapped sentinel", fmt.Errorf("reportFileRepo.GetByID: %w", domain.ErrReportNotFound), http.StatusNotFound, "REPORT_NOT_FOUND"},
		{"unknown error", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestHandleError_WritesEnvelope(t *testing.T) {
	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		handler.HandleError(c, domain.ErrRecordNotFound)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RECORD_NOT_FOUND", resp.Error.Code)
	assert.Nil(t, resp.Data)
}

func TestRespondPaginated_Meta(t *testing.T) {
	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		handler.RespondPaginated(c, []string{"a", "b"}, handler.PagMeta{Total: 42, Offset: 20, Limit: 2})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Offset)
	assert.Equal(t, 2, resp.Meta.Limit)
	assert.Nil(t, resp.Error)
}
