package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"recipe-recommender/internal/pkg/common"
)

// NewRateLimiter 每個 window 允許 requests 次；burst <= 0 時等於 requests
func NewRateLimiter(requests int, window time.Duration, burst int) *rate.Limiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = requests
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(requests)), burst)
}

// RateLimit 限流中間件（整個程序共用一個令牌桶）
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			retry := math.Max(1, math.Round(1/float64(limiter.Limit())))
			c.Header("Retry-After", fmt.Sprintf("%d", int(retry)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrTooManyRequests.Response(false))
			return
		}

		c.Next()
	}
}
