package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const MsgDatabaseUnavailable = "Database connection failed"

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Text aborts with a plain-text body, the way page routes report failures.
func Text(c *gin.Context, status int, message string) {
	c.Abort()
	c.String(status, message)
}

func NotFound(c *gin.Context, message string) {
	Text(c, http.StatusNotFound, message)
}

func Internal(c *gin.Context, message string) {
	Text(c, http.StatusInternalServerError, message)
}

func DatabaseUnavailable(c *gin.Context) {
	Internal(c, MsgDatabaseUnavailable)
}
