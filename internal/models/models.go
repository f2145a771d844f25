// internal/models/models.go
package models

import "time"

// ErrorResponse represents a standard error message format
type ErrorResponse struct {
	Error string `json:"error" example:"LocalStack connection failed: connection refused"`
}

// GenericSuccessResponse for simple success messages
type GenericSuccessResponse struct {
	Message string `json:"message"`
}

// SeedRunResponse represents the result of running the seed workload.
type SeedRunResponse struct {
	// Message indicating success or failure.
	Message string `json:"message"`
	// Combined output of the seed command.
	Output string `json:"output,omitempty"`
}

// --- Structs for Health and Metrics ---

// HealthResponse contains basic server health information
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Uptime    string    `json:"uptime" example:"3h 42m 11s"`
	StartTime time.Time `json:"startTime"`
	Version   string    `json:"version" example:"1.0.0"`
}

// ServerInfo contains identifying information about the running server
type ServerInfo struct {
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	StartTime time.Time `json:"startTime"`
}

// MetricsResponse wraps server info and system metrics
type MetricsResponse struct {
	ServerInfo ServerInfo `json:"serverInfo"`
	Metrics    *Metrics   `json:"metrics"`
}

// Metrics aggregates CPU, memory, and disk statistics
type Metrics struct {
	CPU  *CPUMetrics  `json:"cpu"`
	Mem  *MemMetrics  `json:"memory"`
	Disk *DiskMetrics `json:"disk"`
}

// CPUMetrics holds CPU usage statistics
type CPUMetrics struct {
	NumCPU         int     `json:"numCpu"`
	UsagePercent   float64 `json:"usagePercent"`
	LoadAvg1       float64 `json:"loadAvg1"`
	LoadAvg5       float64 `json:"loadAvg5"`
	LoadAvg15      float64 `json:"loadAvg15"`
	ProcessPercent float64 `json:"processPercent"`
}

// MemMetrics holds memory usage statistics
type MemMetrics struct {
	TotalMem      uint64  `json:"totalBytes"`
	UsedMem       uint64  `json:"usedBytes"`
	AvailableMem  uint64  `json:"availableBytes"`
	UsagePercent  float64 `json:"usagePercent"`
	ProcessMemMB  float64 `json:"processMemMb"`
	ProcessMemPct float64 `json:"processMemPct"`
}

// DiskMetrics holds disk usage statistics for a single path
type DiskMetrics struct {
	Path         string  `json:"path"`
	TotalDisk    uint64  `json:"totalBytes"`
	UsedDisk     uint64  `json:"usedBytes"`
	FreeDisk     uint64  `json:"freeBytes"`
	UsagePercent float64 `json:"usagePercent"`
}
