package handler

import (
	"github.com/gin-gonic/gin"

	"tdstrack/internal/service"
)

// SampleHandler handles the demo data generation endpoint.
type SampleHandler struct {
	sampleService service.SampleDataService
}

// NewSampleHandler creates a new SampleHandler.
func NewSampleHandler(sampleService service.SampleDataService) *SampleHandler {
	return &SampleHandler{sampleService: sampleService}
}

// GenerateTdsData handles POST /api/v1/sample/generate-tds-data
func (h *SampleHandler) GenerateTdsData(c *gin.Context) {
	result, err := h.sampleService.GenerateTdsData(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}
