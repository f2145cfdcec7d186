package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"tradefair/src/app/http/response"
)

// RateLimit applies a global token-bucket limiter across all requests.
// Requests over the limit get a 429 with the standard error envelope.
func RateLimit(limit float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Error{
				Error: response.ErrorDetail{
					Code:      "RATE_LIMITED",
					Message:   "too many requests",
					RequestID: GetRequestID(c),
				},
			})
			return
		}
		c.Next()
	}
}
