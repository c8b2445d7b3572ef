package ctxutil

import (
	"context"
)

type ctxKey string

const (
	adminKey     ctxKey = "admin_subject"
	requestIDKey ctxKey = "request_id"
)

// WithAdmin marks the context as authenticated as the site admin. subject is
// the token subject (the site key).
func WithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminKey, subject)
}

// AdminFromCtx returns the admin subject.
// Returns "" and false if the value is missing, empty, or of the wrong type.
func AdminFromCtx(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(adminKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}

// IsAdminCtx reports whether the context carries an admin identity.
func IsAdminCtx(ctx context.Context) bool {
	_, ok := AdminFromCtx(ctx)
	return ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
