package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey   ctxKey = "request_id"
	referenceIDKey ctxKey = "reference_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithReferenceID tags ctx with the merchant reference id of a payment.
func WithReferenceID(ctx context.Context, referenceID string) context.Context {
	return context.WithValue(ctx, referenceIDKey, referenceID)
}

func ReferenceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(referenceIDKey).(string)
	return id
}

// FromCtx returns the global logger with request_id and reference_id added
// when ctx carries them.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if refID := ReferenceIDFrom(ctx); refID != "" {
		l = l.With(zap.String("reference_id", refID))
	}
	return l
}
