package auth

import (
	"context"
	"log/slog"
)

// LogAuthAttempt records an authentication attempt on the default logger.
// authType: Google|Token|Logout
// status: Success|Fail
// identifier: user id, email, etc. (optional)
// message: additional info (optional)
func LogAuthAttempt(level slog.Level, authType string, status string, identifier string, message string) {
	attrs := []slog.Attr{
		slog.String("auth_type", authType),
		slog.String("status", status),
	}
	if identifier != "" {
		attrs = append(attrs, slog.String("identifier", identifier))
	}
	if message != "" {
		attrs = append(attrs, slog.String("detail", message))
	}
	slog.LogAttrs(context.Background(), level, "auth attempt", attrs...)
}
