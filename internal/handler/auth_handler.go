package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/middleware"
	"github.com/vinealis/vinea-backend/internal/service"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} common.APIResponse{data=service.LoginResponse}
// @Failure 401 {object} common.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.FailResponse(c, "Login failed", err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary Refresh the token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} common.APIResponse{data=service.TokenPair}
// @Failure 401 {object} common.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pair, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		common.FailResponse(c, "Token refresh failed", err)
		return
	}
	common.SuccessResponse(c, pair, nil)
}

// Logout handles POST /api/v1/auth/logout
// @Summary Log out
// @Tags auth
// @Accept json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} common.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		common.FailResponse(c, "Logout failed", err)
		return
	}
	common.SuccessResponse(c, gin.H{"logged_out": true}, nil)
}

// GetCurrentUser handles GET /api/v1/auth/me
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Failed to get user", err)
		return
	}
	common.SuccessResponse(c, user, nil)
}
