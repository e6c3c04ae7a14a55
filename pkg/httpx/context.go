package httpx

import "context"

type ctxKey string

const (
	CtxKeySessionID ctxKey = "session_id"
)

// SessionIDFromContext returns the admin session id set by SessionMiddleware.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySessionID).(string); ok {
		return v
	}
	return ""
}

// ContextWithSessionID is exported so tests and alternative session sources can
// seed the context directly.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeySessionID, id)
}
