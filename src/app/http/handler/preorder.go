package handler

import (
	"github.com/gin-gonic/gin"

	"tradefair/src/app/http/dto"
	"tradefair/src/app/http/response"
	"tradefair/src/app/metrics"
	"tradefair/src/app/middleware"
	"tradefair/src/core/domain"
	"tradefair/src/core/usecase"
)

// PreorderHandler handles the preorder workflow endpoints.
type PreorderHandler struct {
	preorderService *usecase.PreorderService
	paymentService  *usecase.PaymentService
}

func NewPreorderHandler(preorderService *usecase.PreorderService, paymentService *usecase.PaymentService) *PreorderHandler {
	return &PreorderHandler{preorderService: preorderService, paymentService: paymentService}
}

func (h *PreorderHandler) Create(c *gin.Context) {
	var req dto.CreatePreorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	po, err := h.preorderService.Create(c.Request.Context(), middleware.GetActor(c), req.ProductID, req.Quantity)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	metrics.PreorderTransitions.WithLabelValues("created").Inc()
	response.Created(c, preorderBody(po))
}

func (h *PreorderHandler) Get(c *gin.Context) {
	preorderID, ok := parseParamID(c, "preorder_id", "preorder id")
	if !ok {
		return
	}
	po, err := h.preorderService.Get(c.Request.Context(), middleware.GetActor(c), preorderID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, preorderBody(po))
}

func (h *PreorderHandler) List(c *gin.Context) {
	preorders, err := h.preorderService.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	out := make([]gin.H, 0, len(preorders))
	for i := range preorders {
		out = append(out, preorderBody(&preorders[i]))
	}
	response.OK(c, gin.H{"preorders": out})
}

func (h *PreorderHandler) Update(c *gin.Context) {
	preorderID, ok := parseParamID(c, "preorder_id", "preorder id")
	if !ok {
		return
	}
	var req dto.UpdatePreorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	po, err := h.preorderService.UpdateQuantity(c.Request.Context(), middleware.GetActor(c), preorderID, req.Quantity)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, preorderBody(po))
}

func (h *PreorderHandler) Confirm(c *gin.Context) {
	preorderID, ok := parseParamID(c, "preorder_id", "preorder id")
	if !ok {
		return
	}
	po, err := h.preorderService.Confirm(c.Request.Context(), middleware.GetActor(c), preorderID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	metrics.PreorderTransitions.WithLabelValues("confirmed").Inc()
	response.OK(c, preorderBody(po))
}

func (h *PreorderHandler) Cancel(c *gin.Context) {
	preorderID, ok := parseParamID(c, "preorder_id", "preorder id")
	if !ok {
		return
	}
	po, err := h.preorderService.Cancel(c.Request.Context(), middleware.GetActor(c), preorderID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	metrics.PreorderTransitions.WithLabelValues("cancelled").Inc()
	response.OK(c, preorderBody(po))
}

func (h *PreorderHandler) Delete(c *gin.Context) {
	preorderID, ok := parseParamID(c, "preorder_id", "preorder id")
	if !ok {
		return
	}
	if err := h.preorderService.Delete(c.Request.Context(), middleware.GetActor(c), preorderID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// Pay opens a gateway charge for the preorder.
func (h *PreorderHandler) Pay(c *gin.Context) {
	preorderID, ok := parseParamID(c, "preorder_id", "preorder id")
	if !ok {
		return
	}
	var req dto.InitiatePreorderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	initiated, err := h.paymentService.InitiatePreorderPayment(c.Request.Context(), middleware.GetActor(c), preorderID, req.Email)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	metrics.Payments.WithLabelValues("preorder", "initiated").Inc()
	response.OK(c, gin.H{
		"authorization_url": initiated.AuthorizationURL,
		"reference":         initiated.Reference,
	})
}

// PaymentStatus verifies the preorder's charge with the gateway.
func (h *PreorderHandler) PaymentStatus(c *gin.Context) {
	preorderID, ok := parseParamID(c, "preorder_id", "preorder id")
	if !ok {
		return
	}
	status, err := h.paymentService.CheckPreorderPaymentStatus(c.Request.Context(), middleware.GetActor(c), preorderID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"status": status})
}

func preorderBody(po *domain.Preorder) gin.H {
	return gin.H{
		"preorder_id": po.ID,
		"customer_id": po.CustomerID,
		"vendor_id":   po.VendorID,
		"product_id":  po.ProductID,
		"quantity":    po.Quantity,
		"status":      po.Status,
	}
}
