// internal/api/routes.go
package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes defines all endpoints and applies the CORS middleware.
func SetupRoutes(router *gin.Engine) {
	// Every response carries CORS headers; OPTIONS preflights on any path
	// are answered by the middleware itself.
	router.Use(CORSMiddleware())

	// Health endpoints - no auth by design, this is local tooling
	router.GET("/health", HealthCheckHandler)
	router.GET("/health/metrics", SystemMetricsHandler)

	// Aggregated LocalStack container logs for the dashboard
	router.GET("/logs", GetLogsHandler)

	// Seed workload trigger
	router.POST("/test", RunSeedHandler)

	// Opaque relay to LocalStack; /api prefix is stripped before forwarding
	router.Any("/api/*path", ProxyHandler)
}
