// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowRFC3339 returns the current UTC time in RFC3339 format
func UTCNowRFC3339() string {
	return UTCNow().Format(time.RFC3339)
}

// SinceMillis returns the elapsed time since start in whole milliseconds
func SinceMillis(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
