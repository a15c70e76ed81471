package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/services"
	"github.com/yigit/campusadmit/internal/middleware"
)

// StatsService builds the admin dashboard
type StatsService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

// UserController handles admin user management and the dashboard
type UserController struct {
	userService  services.UserService
	statsService StatsService
	logger       zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, statsService StatsService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService:  userService,
		statsService: statsService,
		logger:       logger,
	}
}

// ListUsers lists every account
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponses(users)))
}

// ToggleStatus activates or deactivates an account
// @Summary Toggle user status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Cannot change own status"
// @Router /admin/users/{id}/toggle-status [put]
func (c *UserController) ToggleStatus(ctx *gin.Context) {
	admin, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.ToggleActive(ctx.Request.Context(), admin, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// Stats returns the admin dashboard
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats}
// @Router /admin/stats [get]
func (c *UserController) Stats(ctx *gin.Context) {
	stats, err := c.statsService.Stats(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build dashboard stats")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
