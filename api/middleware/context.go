package middleware

import "context"

type contextKey string

const (
	ctxUserID     contextKey = "user_id"
	ctxUserName   contextKey = "user_name"
	ctxSessionJTI contextKey = "session_jti"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func UserNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserName).(string); ok {
		return v
	}
	return ""
}

func SessionJTIFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionJTI).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the operator identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}
