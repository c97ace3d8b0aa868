package middleware

import (
	"VillageEmpire/internal/shared/metrics"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics 按路由模板记录请求耗时，未命中路由统一记为 unmatched。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
