package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ToContext injects a request-scoped logger into the context. Middlewares
// use it to propagate a logger carrying request fields.
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From extracts the logger from the context, falling back to the singleton
// so callers never need to check whether a middleware ran.
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return L()
	}
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return L()
}
