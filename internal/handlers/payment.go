// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// GET /payments/mine
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	result, err := h.paymentService.ListForArtist(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "payment")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"payments": result.Payments,
		"totals":   result.Totals,
		"summary":  result.Summary,
	}, gin.H{"available": result.Available})
}

// POST /payments/checkout
func (h *PaymentHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	intent, err := h.paymentService.CreateCheckoutIntent(c.Request.Context(), utils.GetSessionFromContext(c), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentIntentCreated),
		"intent":  intent,
	})
}

// GET /admin/payments
func (h *PaymentHandler) GetAllPayments(c *gin.Context) {
	result, err := h.paymentService.ListAll(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "payment")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /admin/payments/audit
func (h *PaymentHandler) AuditPayments(c *gin.Context) {
	audit, err := h.paymentService.Audit(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "payment")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"checked":    audit.Checked,
		"violations": audit.Violations,
		"totals":     audit.Totals,
	}, gin.H{"available": audit.Available})
}

// GET /admin/stripe
func (h *PaymentHandler) GetStripeStatus(c *gin.Context) {
	configured, err := h.paymentService.StripeConfigured(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "payment")
		return
	}

	utils.SuccessResponse(c, gin.H{"configured": configured})
}

// PUT /admin/stripe
func (h *PaymentHandler) SetStripeConfiguration(c *gin.Context) {
	var req models.StripeConfiguration
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.paymentService.SetStripeConfiguration(c.Request.Context(), utils.GetSessionFromContext(c), &req); err != nil {
		utils.ServiceErrorResponse(c, err, "payment")
		return
	}

	utils.MessageResponse(c, i18n.KeyStripeConfigured)
}
