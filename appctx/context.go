package appctx

import "context"

// Context key for request-scoped values
type contextKey string

const RequestIDContextKey contextKey = "request_id"

// SetRequestID adds the inbound request identifier to the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID extracts the inbound request identifier from the context
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDContextKey).(string)
	return requestID, ok
}
