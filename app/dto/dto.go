// Package dto holds the request and response bodies of the HTTP facade
package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status   string   `json:"status"`
	Endpoint string   `json:"endpoint"`
	Method   string   `json:"method"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty" validate:"omitempty"`
}

// DeleteResponse reports a successful delete
type DeleteResponse struct {
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}
