package api

import "histviz/pkg/contracts"

const (
	// EmptyHistogramMessage is returned when filtering leaves no values to bin
	EmptyHistogramMessage = "Filtered dataframe is empty"
	// EmptyScatterMessage is returned when no (time, value) pair survives
	EmptyScatterMessage = "Dataframe is empty"
)

// ErrorPayload is the HTTP 200 body for empty results. Clients check for
// the error key before reading a summary.
type ErrorPayload struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
	Data      *DataDirStatus    `json:"data,omitempty"`
}

// DataDirStatus summarizes what the row source can see
type DataDirStatus struct {
	Path         string `json:"path"`
	Dates        int    `json:"dates"`
	Datasets     int    `json:"datasets"`
	LatestFile   string `json:"latest_file,omitempty"`
	LatestUpdate string `json:"latest_update,omitempty"`
}

// VersionResponse is the body of GET /api/version
type VersionResponse struct {
	contracts.VersionInfo
	StartTime     string  `json:"start_time"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
