// Package controllers handles HTTP request handling
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/middleware"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

// parseIDParam parses a positive ID from the request path. On failure the
// 400 response is already written.
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(paramName, "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// principal returns the authenticated caller. Routes using it sit behind
// JWTAuth, so a missing principal is answered with 401.
func principal(ctx *gin.Context) (models.Principal, bool) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
	}
	return p, ok
}
