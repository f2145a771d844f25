// internal/api/proxy_handlers.go
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/localdash/localdash-api-server/internal/config"
	"github.com/localdash/localdash-api-server/internal/models"
)

// @Summary Proxy a request to LocalStack
// @Description Relays the request to the configured LocalStack endpoint with the `/api` prefix stripped, adding CORS headers the browser needs. The forwarded endpoint's semantics are opaque to this server.
// @Tags Proxy
// @Produce json
// @Success 200 {string} string "Upstream response body"
// @Failure 502 {object} models.ErrorResponse "Upstream returned an error status"
// @Failure 503 {object} models.ErrorResponse "LocalStack unreachable"
// @Router /api/{path} [get]
func ProxyHandler(c *gin.Context) {
	upstreamPath := c.Param("path")
	target := strings.TrimRight(config.AppConfig.LocalStackURL, "/") + upstreamPath
	if c.Request.URL.RawQuery != "" {
		target += "?" + c.Request.URL.RawQuery
	}

	log.Infof("Proxying: %s %s -> %s", c.Request.Method, c.Request.URL.Path, target)

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, c.Request.Body)
	if err != nil {
		log.Errorf("Proxy error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Proxy error: %s", err.Error())})
		return
	}
	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	client := &http.Client{Timeout: config.AppConfig.ProxyTimeout}
	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (urlErr.Timeout() || isConnectionError(urlErr)) {
			log.Warnf("Connection error proxying to LocalStack: %v", err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error: fmt.Sprintf("LocalStack connection failed: %s", urlErr.Err.Error()),
			})
			return
		}
		log.Errorf("Proxy error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Proxy error: %s", err.Error())})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("Proxy error reading upstream body: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Proxy error: %s", err.Error())})
		return
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warnf("Upstream HTTP error %d for %s", resp.StatusCode, target)
		c.JSON(resp.StatusCode, models.ErrorResponse{
			Error: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, body)
}

// isConnectionError reports whether the upstream was unreachable, as
// opposed to reachable but misbehaving.
func isConnectionError(err *url.Error) bool {
	msg := err.Err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable")
}
