package middleware

import (
	"log/slog"
	"net/http"

	"fin-approvals/internal/handler/httperr"
	"fin-approvals/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// stackLogLimit caps how many stack lines an unhandled error dumps
// into the log.
const stackLogLimit = 20

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// Most recent public error wins.
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		// Anything left is an internal failure. Log the cause with its
		// stack and return an opaque body.
		if last := c.Errors.Last(); last != nil {
			slog.Error("unhandled request error",
				"path", c.Request.URL.Path,
				"stack", errs.ExtractStackLines(last.Err, stackLogLimit),
			)
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.NewResponse(http.StatusInternalServerError, "Internal server error"))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				resp := httperr.NewResponse(http.StatusInternalServerError, "Internal server error")
				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
