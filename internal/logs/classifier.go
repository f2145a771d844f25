// internal/logs/classifier.go
package logs

import (
	"strings"

	"github.com/localdash/localdash-api-server/internal/models"
)

// Keyword sets checked in precedence order; the first matching set wins.
var (
	errorKeywords   = []string{"ERROR", "EXCEPTION", "FAILED", "FATAL"}
	warningKeywords = []string{"WARN", "WARNING"}
	debugKeywords   = []string{"DEBUG"}
)

// Classify assigns a severity to a message by case-insensitive keyword
// scan. Error keywords take precedence over warning, warning over debug;
// anything else is info.
func Classify(message string) models.LogLevel {
	upper := strings.ToUpper(message)
	switch {
	case containsAny(upper, errorKeywords):
		return models.LevelError
	case containsAny(upper, warningKeywords):
		return models.LevelWarning
	case containsAny(upper, debugKeywords):
		return models.LevelDebug
	}
	return models.LevelInfo
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
