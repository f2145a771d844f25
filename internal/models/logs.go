package models

// LogLevel is the severity assigned to a log record. It is always one of
// the four values below; classification falls back to LevelInfo.
type LogLevel string

const (
	LevelDebug   LogLevel = "debug"
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// MaxMessageLength caps the message of a single log record to bound memory
// and response size.
const MaxMessageLength = 800

// MaxFeedRecords is the most-recent window returned in a feed; older
// records are counted in Total but not returned.
const MaxFeedRecords = 50

// LogRecord is one normalized log entry served to the dashboard.
type LogRecord struct {
	// Human-readable timestamp, original granularity preserved.
	Timestamp string   `json:"timestamp"`
	Level     LogLevel `json:"level"`
	// Message text, truncated to MaxMessageLength.
	Message string `json:"message"`
}

// LogFeed is the response envelope for the logs endpoint.
type LogFeed struct {
	Success bool `json:"success"`
	// Oldest-to-newest, at most MaxFeedRecords entries.
	Logs []LogRecord `json:"logs"`
	// Records parsed before windowing, so Total >= len(Logs).
	Total int `json:"total"`
	// Where the data came from, e.g. "docker:localstack-main", or the
	// "troubleshooting" sentinel when no source resolved.
	Source string `json:"source,omitempty"`
	// Resolved container name on the success path.
	Container string `json:"container,omitempty"`
	// Set only when Success is false.
	Error string `json:"error,omitempty"`
}
