package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
	"github.com/emanuelbartolo/BoardGameApp/pkg/response"
)

// writeError maps an engine error to the API error envelope. Unknown errors
// are logged and reported as internal.
func writeError(c *gin.Context, err error) {
	var code string
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = response.ErrCodeNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		code = response.ErrCodeAlreadyExists
	case errors.Is(err, domain.ErrInvalidArgument):
		code = response.ErrCodeInvalidArgument
	case errors.Is(err, domain.ErrPermissionDenied):
		code = response.ErrCodePermissionDenied
	case errors.Is(err, domain.ErrAborted):
		code = response.ErrCodeAborted
	default:
		logger.WithContext(c.Request.Context()).Error("unhandled error", zap.Error(err))
		c.JSON(response.GetHTTPStatus(response.ErrCodeInternalError), response.InternalError(""))
		return
	}
	c.JSON(response.GetHTTPStatus(code), response.Error(code, err.Error()))
}
