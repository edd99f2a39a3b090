package agent

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brishavK71/kafka-monitoring/pkg/metrics"
)

// newEngine builds the agent's own HTTP surface: liveness, the latest run
// result, and Prometheus metrics.
func newEngine(latest *latestResult) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(metrics.GinMiddleware(), gin.Recovery())

	engine.GET("/healthz", livenessHandler())
	engine.GET("/status", statusHandler(latest))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return engine
}

// livenessHandler always returns 200 OK while the process is running.
func livenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	}
}

// statusHandler returns the latest run result. 503 while no run has
// completed yet or when the pipeline is unhealthy.
func statusHandler(latest *latestResult) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := latest.load()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "pending"})
			return
		}

		status := http.StatusOK
		if !result.Healthy() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, result)
	}
}
