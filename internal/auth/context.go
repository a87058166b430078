package auth

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

const RequestIDHeader = "X-Request-ID"

// User is a placeholder until authentication exists; it is always nil today.
type User struct {
	ID   string
	Role string
}

// RequestContext is assembled once per request by the HTTP middleware or the gRPC interceptor.
type RequestContext struct {
	RequestID string
	User      *User
}

type ctxKey struct{}

func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(ctxKey{}).(RequestContext)
	return rc, ok
}

// GetRequestID returns the request id set by middleware, falling back to incoming gRPC metadata.
func GetRequestID(ctx context.Context) string {
	if rc, ok := FromContext(ctx); ok {
		return rc.RequestID
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-request-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

func GetUser(ctx context.Context) *User {
	rc, _ := FromContext(ctx)
	return rc.User
}

// NewRequestContext keeps an incoming request id or generates one.
func NewRequestContext(incomingID string) RequestContext {
	if incomingID == "" {
		incomingID = uuid.New().String()
	}
	return RequestContext{RequestID: incomingID}
}
