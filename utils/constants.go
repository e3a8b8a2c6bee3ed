package utils

import (
	"time"
)

// Request handling constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400

	// RequestTimeout bounds every database call made on behalf of an HTTP request
	RequestTimeout = 30 * time.Second

	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"
)

// Context keys shared by handlers, flows and the seed pipeline
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	EndpointKey  contextKey = "endpoint"
	IPAddressKey contextKey = "ip_address"
	UserAgentKey contextKey = "user_agent"
)
