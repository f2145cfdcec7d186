// Package handler contains the Gin HTTP handlers for the API.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair/src/app/http/response"
	"tradefair/src/app/middleware"
	"tradefair/src/core/usecase"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
}

func NewHealthHandler(healthService *usecase.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Check returns the application health status.
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context())
	response.OK(c, status)
}

// parseParamID parses a path parameter as an int64 id. On failure it
// writes a 400 response and returns ok=false.
func parseParamID(c *gin.Context, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+label, middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}
