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

// ShedHandler handles shed allocation and the public domain endpoints.
type ShedHandler struct {
	shedService     *usecase.ShedService
	capacityService *usecase.CapacityService
}

func NewShedHandler(shedService *usecase.ShedService, capacityService *usecase.CapacityService) *ShedHandler {
	return &ShedHandler{shedService: shedService, capacityService: capacityService}
}

func (h *ShedHandler) Create(c *gin.Context) {
	var req dto.CreateShedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	shed, err := h.shedService.Allocate(c.Request.Context(), middleware.GetActor(c), req.Domain, req.Name)
	if err != nil {
		metrics.ShedAllocations.WithLabelValues(allocationOutcome(err)).Inc()
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	metrics.ShedAllocations.WithLabelValues("allocated").Inc()
	response.Created(c, shedBody(shed))
}

func (h *ShedHandler) Update(c *gin.Context) {
	shedID, ok := parseParamID(c, "shed_id", "shed id")
	if !ok {
		return
	}
	var req dto.UpdateShedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	shed, err := h.shedService.Update(c.Request.Context(), middleware.GetActor(c), shedID, req.Name)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, shedBody(shed))
}

func (h *ShedHandler) Release(c *gin.Context) {
	shedID, ok := parseParamID(c, "shed_id", "shed id")
	if !ok {
		return
	}
	if err := h.shedService.Release(c.Request.Context(), middleware.GetActor(c), shedID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

func (h *ShedHandler) Get(c *gin.Context) {
	shedID, ok := parseParamID(c, "shed_id", "shed id")
	if !ok {
		return
	}
	shed, err := h.shedService.Get(c.Request.Context(), shedID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, shedBody(shed))
}

func (h *ShedHandler) List(c *gin.Context) {
	var domainCode *string
	if code := c.Query("domain"); code != "" {
		domainCode = &code
	}
	sheds, err := h.shedService.List(c.Request.Context(), domainCode)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"sheds": shedBodies(sheds)})
}

func (h *ShedHandler) ListMine(c *gin.Context) {
	sheds, err := h.shedService.ListMine(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"sheds": shedBodies(sheds)})
}

// Domains lists the configured shed categories.
func (h *ShedHandler) Domains(c *gin.Context) {
	var out []gin.H
	for _, d := range h.shedService.Domains() {
		out = append(out, gin.H{
			"code":     d.Code,
			"name":     d.Name,
			"capacity": d.Capacity,
		})
	}
	response.OK(c, gin.H{"domains": out})
}

// Availability returns the capacity snapshot keyed by domain display name.
func (h *ShedHandler) Availability(c *gin.Context) {
	snapshot, err := h.capacityService.Snapshot(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, snapshot)
}

func allocationOutcome(err error) string {
	switch {
	case domain.IsDomainFull(err):
		return "domain_full"
	case domain.IsUnknownDomain(err):
		return "unknown_domain"
	case domain.IsForbidden(err):
		return "forbidden"
	default:
		return "error"
	}
}

func shedBody(s *domain.Shed) gin.H {
	return gin.H{
		"shed_id":     s.ID,
		"domain":      s.DomainCode,
		"shed_number": s.Number,
		"name":        s.Name,
		"vendor_id":   s.VendorID,
		"secured":     s.Secured,
	}
}

func shedBodies(sheds []domain.Shed) []gin.H {
	out := make([]gin.H, 0, len(sheds))
	for i := range sheds {
		out = append(out, shedBody(&sheds[i]))
	}
	return out
}
