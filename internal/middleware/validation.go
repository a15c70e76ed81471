package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

// BindJSON decodes the request body into obj. Field rules are checked by the
// services; this only rejects bodies that are not the expected JSON shape.
// On failure the error response is already written and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.NewValidationError(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type.String()))
	}
	if errors.Is(err, io.EOF) {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "request body is required")
	}
	return apperrors.NewCustomError(apperrors.ErrBadRequest, "invalid request format")
}
