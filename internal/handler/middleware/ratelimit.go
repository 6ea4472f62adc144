package middleware

import (
	"net/http"

	"fin-approvals/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit throttles an endpoint per client IP. Sits in front of the
// credential check so brute force attempts never reach the database.
func LoginRateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts, try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
