package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tdstrack/internal/service"
)

// PaymentHandler handles TDS payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Upsert handles POST /api/v1/payments
func (h *PaymentHandler) Upsert(c *gin.Context) {
	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	payment, err := h.paymentService.UpsertPayment(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, payment)
}

// Get handles GET /api/v1/payments/gstin/:gstin/period/:period
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("gstin"), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payment)
}

// ListByPeriod handles GET /api/v1/payments/period/:period
func (h *PaymentHandler) ListByPeriod(c *gin.Context) {
	payments, err := h.paymentService.ListByPeriod(c.Request.Context(), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

// ListPending handles GET /api/v1/payments/pending
func (h *PaymentHandler) ListPending(c *gin.Context) {
	payments, err := h.paymentService.ListPending(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

// StatusSummary handles GET /api/v1/payments/summary/:period
func (h *PaymentHandler) StatusSummary(c *gin.Context) {
	summary, err := h.paymentService.StatusSummary(c.Request.Context(), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
