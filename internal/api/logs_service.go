// internal/api/logs_service.go
package api

import (
	"github.com/localdash/localdash-api-server/internal/logs"
)

// logsService is the global log aggregation service instance.
var logsService *logs.Service

// SetLogsService sets the log aggregation service instance for use by handlers.
func SetLogsService(svc *logs.Service) {
	logsService = svc
}
