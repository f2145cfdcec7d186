package handler

import (
	"github.com/gin-gonic/gin"

	"tradefair/src/app/http/dto"
	"tradefair/src/app/http/response"
	"tradefair/src/app/middleware"
	"tradefair/src/core/usecase"
)

// FollowHandler handles customer follow endpoints.
type FollowHandler struct {
	followService *usecase.FollowService
}

func NewFollowHandler(followService *usecase.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	follow, err := h.followService.Follow(c.Request.Context(), middleware.GetActor(c), req.VendorID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{
		"follow_id": follow.ID,
		"vendor_id": follow.VendorID,
	})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	vendorID, ok := parseParamID(c, "vendor_id", "vendor id")
	if !ok {
		return
	}
	if err := h.followService.Unfollow(c.Request.Context(), middleware.GetActor(c), vendorID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

func (h *FollowHandler) List(c *gin.Context) {
	follows, err := h.followService.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	out := make([]gin.H, 0, len(follows))
	for _, f := range follows {
		out = append(out, gin.H{
			"follow_id": f.ID,
			"vendor_id": f.VendorID,
		})
	}
	response.OK(c, gin.H{"follows": out})
}
