// Package response writes the site's JSON envelope: {"success": true, "data": ...}
// on success and {"error": "..."} on failure.
package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Error: message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func PayloadTooLarge(c *gin.Context, message string) {
	Fail(c, http.StatusRequestEntityTooLarge, message)
}

func MethodNotAllowed(c *gin.Context) {
	Fail(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// InternalError reports err to Sentry (a no-op unless sentry.Init ran) and
// records it on the gin context for the request logger.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	sentry.CaptureException(err)
	Fail(c, http.StatusInternalServerError, err.Error())
}
