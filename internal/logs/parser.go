// internal/logs/parser.go
package logs

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/localdash/localdash-api-server/internal/models"
)

// Layout for timestamps generated when a line carries none of its own.
const fallbackTimeLayout = "2006-01-02 15:04:05"

// ParseLine converts one raw log line into a structured record.
//
// Lines that contain both 'T' and 'Z' are assumed to start with an
// ISO-8601-style timestamp (the shape `docker logs --timestamps` emits) and
// are split at the first space: the prefix becomes the timestamp with 'T'
// replaced by a space and a trailing 'Z' stripped, the remainder becomes
// the message and is classified for severity. Everything else degrades to
// the current wall-clock time with the whole line as an info message.
//
// The 'T'/'Z' presence check is deliberately loose and can misfire on
// messages that happen to contain both letters; it is kept for
// compatibility with the dashboard's existing feed.
func ParseLine(line string) models.LogRecord {
	if strings.Contains(line, "T") && strings.Contains(line, "Z") {
		parts := strings.SplitN(line, " ", 2)
		if len(parts) == 2 {
			timestamp := strings.TrimSuffix(strings.ReplaceAll(parts[0], "T", " "), "Z")
			message := parts[1]
			// Severity comes from the full message; a keyword past the
			// length cap still counts.
			return models.LogRecord{
				Timestamp: timestamp,
				Level:     Classify(message),
				Message:   truncateMessage(message),
			}
		}
	}

	// No recognizable timestamp prefix: best-effort record rather than a
	// dropped line.
	return models.LogRecord{
		Timestamp: time.Now().Format(fallbackTimeLayout),
		Level:     models.LevelInfo,
		Message:   truncateMessage(line),
	}
}

// ParseLines splits raw log output into records, one per non-blank line.
// Blank lines produce no record.
func ParseLines(raw string) []models.LogRecord {
	var records []models.LogRecord
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseLine(line))
	}
	return records
}

func truncateMessage(s string) string {
	return truncateRunes(s, models.MaxMessageLength)
}

// truncateRunes caps s to max characters. The limits are defined in
// characters, not bytes, so multibyte text is never over-truncated or cut
// mid-rune.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
