package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careflow/internal/service"
)

// ExportHandler handles report export download endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV handles GET /api/v1/reports/:id/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	h.export(c, h.exportService.ExportCSV)
}

// ExportXLSX handles GET /api/v1/reports/:id/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	h.export(c, h.exportService.ExportXLSX)
}

func (h *ExportHandler) export(c *gin.Context, render func(ctx context.Context, reportID uuid.UUID) (*service.ExportFile, error)) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return
	}

	file, err := render(c.Request.Context(), reportID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
