package models

import "time"

// ServerInfo represents the running inspector service
type ServerInfo struct {
	ServiceID       string      `json:"service_id"`
	StartTime       time.Time   `json:"start_time"`
	LastRequestTime time.Time   `json:"last_request_time"`
	PatternTable    string      `json:"pattern_table_version"`
	SystemStats     SystemStats `json:"system_stats"`
}

// ServerInfoResponse is the body of GET /server_info
type ServerInfoResponse struct {
	Uptime       float64     `json:"uptime"`
	IdleTime     float64     `json:"idle_time"`
	PatternTable string      `json:"pattern_table_version"`
	Resources    SystemStats `json:"resources"`
}

// SystemStats represents process and host statistics
type SystemStats struct {
	CPUPercent float64     `json:"cpu_percent"`
	Memory     MemoryStats `json:"memory"`
	Disk       DiskStats   `json:"disk"`
	IO         IOStats     `json:"io"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	RSS     uint64  `json:"rss"`     // Resident Set Size in bytes
	VMS     uint64  `json:"vms"`     // Virtual Memory Size in bytes
	Percent float32 `json:"percent"` // Memory usage percentage
}

// DiskStats represents disk usage statistics
type DiskStats struct {
	Total   uint64  `json:"total"`   // Total disk space in bytes
	Used    uint64  `json:"used"`    // Used disk space in bytes
	Free    uint64  `json:"free"`    // Free disk space in bytes
	Percent float64 `json:"percent"` // Disk usage percentage
}

// IOStats represents I/O statistics
type IOStats struct {
	ReadBytes  uint64 `json:"read_bytes"`  // Total bytes read
	WriteBytes uint64 `json:"write_bytes"` // Total bytes written
}
