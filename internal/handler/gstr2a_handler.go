package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tdstrack/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Gstr2aHandler handles GSTR2A ingestion and query endpoints.
type Gstr2aHandler struct {
	gstr2aService service.Gstr2aService
}

// NewGstr2aHandler creates a new Gstr2aHandler.
func NewGstr2aHandler(gstr2aService service.Gstr2aService) *Gstr2aHandler {
	return &Gstr2aHandler{gstr2aService: gstr2aService}
}

// Upload handles POST /api/v1/gstr2a/upload. The multipart "file" field
// carries a portal export named <gstin>_GSTR2A.xlsx.
func (h *Gstr2aHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.gstr2aService.IngestFile(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetBatch handles GET /api/v1/gstr2a/gstin/:gstin/period/:period
func (h *Gstr2aHandler) GetBatch(c *gin.Context) {
	batch, err := h.gstr2aService.GetBatch(c.Request.Context(), c.Param("gstin"), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// ListBatches handles GET /api/v1/gstr2a/gstin/:gstin
func (h *Gstr2aHandler) ListBatches(c *gin.Context) {
	batches, err := h.gstr2aService.ListBatchesByGSTIN(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batches)
}

// OverallTotals handles GET /api/v1/gstr2a/summary
func (h *Gstr2aHandler) OverallTotals(c *gin.Context) {
	totals, err := h.gstr2aService.OverallTotals(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, totals)
}

// TotalsByGSTIN handles GET /api/v1/gstr2a/gstin/:gstin/total
func (h *Gstr2aHandler) TotalsByGSTIN(c *gin.Context) {
	totals, err := h.gstr2aService.TotalsByGSTIN(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, totals)
}

// DownloadOriginal handles GET /api/v1/gstr2a/gstin/:gstin/file and streams the
// archived spreadsheet back as an attachment.
func (h *Gstr2aHandler) DownloadOriginal(c *gin.Context) {
	data, filename, err := h.gstr2aService.DownloadOriginal(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
