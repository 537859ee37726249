package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/service"
)

// UserHandler admin account management endpoints
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers handles GET /api/v1/users
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} common.APIResponse{data=[]domain.User}
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, meta, err := h.service.ListUsers(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		common.FailResponse(c, "Failed to list users", err)
		return
	}

	responses := make([]*domain.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	common.SuccessResponse(c, responses, meta)
}

// GetUser handles GET /api/v1/users/:id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), paramUint64(c, "id"))
	if err != nil {
		common.FailResponse(c, "Failed to get user", err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

// CreateUser handles POST /api/v1/users
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body domain.CreateUserRequest true "User"
// @Success 201 {object} common.APIResponse{data=domain.UserResponse}
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		common.FailResponse(c, "Failed to create user", err)
		return
	}
	common.CreatedResponse(c, user)
}

// UpdateUser handles PUT /api/v1/users/:id
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body domain.UpdateUserRequest true "Changes"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req domain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), paramUint64(c, "id"), &req)
	if err != nil {
		common.FailResponse(c, "Failed to update user", err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

// ListRoles handles GET /api/v1/users/roles
// @Summary List roles and their permissions
// @Tags users
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.Role}
// @Security BearerAuth
// @Router /users/roles [get]
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		common.FailResponse(c, "Failed to list roles", err)
		return
	}
	common.SuccessResponse(c, roles, nil)
}

// DeleteUser handles DELETE /api/v1/users/:id
// @Summary Delete a user
// @Tags users
// @Param id path int true "User ID"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), paramUint64(c, "id")); err != nil {
		common.FailResponse(c, "Failed to delete user", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
