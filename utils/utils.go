// Package utils provides utility functions for the application.
package utils

import "context"

// RequestID returns the correlation id stored in ctx, or an empty string
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}
