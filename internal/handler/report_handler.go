package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tdstrack/internal/service"
)

// ReportHandler handles the reconciliation report endpoints.
type ReportHandler struct {
	reconService service.ReconService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reconService service.ReconService) *ReportHandler {
	return &ReportHandler{reconService: reconService}
}

// TdsReport handles GET /api/v1/reports/tds
func (h *ReportHandler) TdsReport(c *gin.Context) {
	report, err := h.reconService.Report(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// NotifyInput is the DTO for report notification requests.
type NotifyInput struct {
	Email string `json:"email" binding:"required,email"`
}

// Notify handles POST /api/v1/reports/tds/notify
func (h *ReportHandler) Notify(c *gin.Context) {
	var input NotifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.reconService.EmailReport(c.Request.Context(), input.Email); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"sent_to": input.Email})
}
