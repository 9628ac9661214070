package http

import (
	"errors"
	"fmt"
	"net/http"

	"damai-site/pkg/logger"
	"damai-site/pkg/response"
	"damai-site/services/content/internal/entity"

	"github.com/gin-gonic/gin"
)

// writeError maps usecase errors onto the response envelope. Upload and
// backend failures are 500s.
func writeError(c *gin.Context, log *logger.Logger, action string, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, entity.ErrAuth):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, entity.ErrTooLarge):
		response.PayloadTooLarge(c, err.Error())
	default:
		log.Error("Failed to %s: %v", action, err)
		response.InternalError(c, err)
	}
}

// bindError answers a failed ShouldBind*. A body cut off by BodyLimit is a
// 413; anything else is a malformed request.
func bindError(c *gin.Context, err error) {
	if tooLarge := asTooLarge(err); tooLarge != nil {
		response.PayloadTooLarge(c, tooLarge.Error())
		return
	}
	response.BadRequest(c, err.Error())
}

// asTooLarge returns ErrTooLarge with the limit when err came from
// http.MaxBytesReader, and nil otherwise.
func asTooLarge(err error) error {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return nil
	}
	return fmt.Errorf("%w: limit is %d bytes", entity.ErrTooLarge, maxErr.Limit)
}
