// internal/api/logs_handlers.go
package api

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// @Summary Get LocalStack logs
// @Description Returns a normalized, leveled feed of recent LocalStack container logs.
// @Description
// @Description **Notes**
// @Description - When no LocalStack container is found, the response is still 200 with `source: "troubleshooting"` and synthetic diagnostic records.
// @Description - Only an unexpected pipeline failure yields 500; the body is then a `success: false` feed with a single error record.
// @Tags Logs
// @Produce json
// @Success 200 {object} models.LogFeed "Structured log feed (real or diagnostic)"
// @Failure 500 {object} models.LogFeed "Pipeline fault, success=false"
// @Router /logs [get]
func GetLogsHandler(c *gin.Context) {
	log.Debug("Fetching LocalStack logs")

	// A background context: a run finishes on its own timeouts even if the
	// dashboard navigates away mid-request.
	feed := logsService.Collect(context.Background())

	status := http.StatusOK
	if !feed.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, feed)
}
