package handler

import (
	"github.com/gin-gonic/gin"

	"tradefair/src/app/http/dto"
	"tradefair/src/app/http/response"
	"tradefair/src/app/metrics"
	"tradefair/src/app/middleware"
	"tradefair/src/core/usecase"
)

// PaymentHandler handles shed payments and the gateway webhook.
type PaymentHandler struct {
	paymentService *usecase.PaymentService
}

func NewPaymentHandler(paymentService *usecase.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PayShed opens a gateway charge to secure a shed.
func (h *PaymentHandler) PayShed(c *gin.Context) {
	shedID, ok := parseParamID(c, "shed_id", "shed id")
	if !ok {
		return
	}
	var req dto.InitiateShedPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	initiated, err := h.paymentService.InitiateShedPayment(c.Request.Context(), middleware.GetActor(c), shedID, req.Amount, req.Email)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	metrics.Payments.WithLabelValues("shed", "initiated").Inc()
	response.OK(c, gin.H{
		"authorization_url": initiated.AuthorizationURL,
		"reference":         initiated.Reference,
	})
}

// Webhook receives gateway callbacks. It always answers 200 for
// recognized payloads so the gateway stops retrying.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid webhook payload", middleware.GetRequestID(c))
		return
	}
	err := h.paymentService.HandleWebhook(c.Request.Context(), usecase.WebhookEvent{
		Event:     req.Event,
		Reference: req.Data.Reference,
		Status:    req.Data.Status,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	metrics.Payments.WithLabelValues("webhook", "success").Inc()
	response.OK(c, gin.H{"received": true})
}
