package handler

import (
	"github.com/gin-gonic/gin"

	"tradefair/src/app/http/dto"
	"tradefair/src/app/http/response"
	"tradefair/src/app/middleware"
	"tradefair/src/core/domain"
	"tradefair/src/core/usecase"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	authService *usecase.AuthService
}

func NewAuthHandler(authService *usecase.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	result, err := h.authService.Signup(c.Request.Context(), usecase.SignupInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		IsVendor:     req.IsVendor,
		BusinessName: req.BusinessName,
		Description:  req.Description,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, authResultBody(result))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, authResultBody(result))
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, profile, err := h.authService.Me(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	body := gin.H{"user": userBody(user)}
	if profile != nil {
		body["profile"] = profileBody(profile)
	}
	response.OK(c, body)
}

func authResultBody(result *usecase.AuthResult) gin.H {
	body := gin.H{
		"user":  userBody(result.User),
		"token": result.Token,
	}
	if result.Profile != nil {
		body["profile"] = profileBody(result.Profile)
	}
	return body
}

func userBody(u *domain.User) gin.H {
	return gin.H{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	}
}

func profileBody(p *domain.VendorProfile) gin.H {
	return gin.H{
		"business_name": p.BusinessName,
		"description":   p.Description,
	}
}
