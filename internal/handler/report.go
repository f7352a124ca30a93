package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/metrics"
	"github.com/queueless/queueless-api/internal/middleware"
	"github.com/queueless/queueless-api/internal/model"
	"github.com/queueless/queueless-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves Excel exports of an office's data.
type ReportHandler struct {
	reports *service.ReportGenerator
	now     func() time.Time
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports *service.ReportGenerator) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		now:     time.Now,
	}
}

// Download builds and returns the office report workbook
// @Summary      Download office report
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id path string true "Office ID"
// @Success      200 {file} binary "Excel workbook"
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/offices/{id}/report [get]
func (h *ReportHandler) Download(c *gin.Context) {
	officeID := c.Param("id")
	if !middleware.ValidateID(officeID) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "invalid office id",
		})
		return
	}

	buf, office, err := h.reports.Generate(officeID, h.now())
	if err != nil {
		metrics.Get().IncrementReportGenerated(false)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to generate report",
		})
		return
	}
	if office == nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   "office not found",
		})
		return
	}

	metrics.Get().IncrementReportGenerated(true)
	logger.Audit(c.Request.Context(), logger.AuditEvent{
		Action:     logger.AuditActionReportDownload,
		Resource:   "report",
		ResourceID: office.ID,
		ClientIP:   c.ClientIP(),
		Success:    true,
	})

	slug := strings.ToLower(strings.ReplaceAll(office.Name, " ", "_"))
	filename := fmt.Sprintf("%s_%s.xlsx", slug, h.now().Format("2006-01-02"))

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
