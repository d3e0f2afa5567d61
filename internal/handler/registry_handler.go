package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tdstrack/internal/service"
)

// RegistryHandler handles the GSTIN master and TDS registration endpoints.
type RegistryHandler struct {
	registryService service.RegistryService
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(registryService service.RegistryService) *RegistryHandler {
	return &RegistryHandler{registryService: registryService}
}

// UpsertTaxpayer handles POST /api/v1/gstin
func (h *RegistryHandler) UpsertTaxpayer(c *gin.Context) {
	var input service.TaxpayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	taxpayer, err := h.registryService.UpsertTaxpayer(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, taxpayer)
}

// GetTaxpayer handles GET /api/v1/gstin/:gstin
func (h *RegistryHandler) GetTaxpayer(c *gin.Context) {
	taxpayer, err := h.registryService.GetTaxpayer(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, taxpayer)
}

// ListTaxpayers handles GET /api/v1/gstin
func (h *RegistryHandler) ListTaxpayers(c *gin.Context) {
	taxpayers, err := h.registryService.ListTaxpayers(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, taxpayers)
}

// ListTaxpayersByPAN handles GET /api/v1/gstin/pan/:pan
func (h *RegistryHandler) ListTaxpayersByPAN(c *gin.Context) {
	taxpayers, err := h.registryService.ListTaxpayersByPAN(c.Request.Context(), c.Param("pan"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, taxpayers)
}

// UpsertRegistrant handles POST /api/v1/tds-gstin
func (h *RegistryHandler) UpsertRegistrant(c *gin.Context) {
	var input service.RegistrantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	registrant, err := h.registryService.UpsertRegistrant(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, registrant)
}

// GetRegistrant handles GET /api/v1/tds-gstin/:gstin
func (h *RegistryHandler) GetRegistrant(c *gin.Context) {
	registrant, err := h.registryService.GetRegistrant(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, registrant)
}

// ListRegistrants handles GET /api/v1/tds-gstin
func (h *RegistryHandler) ListRegistrants(c *gin.Context) {
	registrants, err := h.registryService.ListRegistrants(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, registrants)
}

// ListRegistrantsByPAN handles GET /api/v1/tds-gstin/pan/:pan
func (h *RegistryHandler) ListRegistrantsByPAN(c *gin.Context) {
	registrants, err := h.registryService.ListRegistrantsByPAN(c.Request.Context(), c.Param("pan"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, registrants)
}
