package middleware

import (
	"time"

	"github.com/SscSPs/org_banking/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// HTTPMetrics records request count and latency per matched route.
func HTTPMetrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		recorder.HTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
