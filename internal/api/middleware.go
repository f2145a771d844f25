// internal/api/middleware.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware attaches permissive cross-origin headers to every
// response and answers preflight OPTIONS requests on any path with an
// empty 200. The dashboard is served from a different origin than this
// server, so the browser preflights most of its calls.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
