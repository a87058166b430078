package apperror

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

// Tracker logs every failure before it is handed to a transport adapter.
// It is constructed once in main and injected.
type Tracker struct {
	logger logger.ZapLogger
}

func NewTracker(log logger.ZapLogger) *Tracker {
	return &Tracker{logger: log}
}

// Track translates err, logs it with the request id and the given context, and
// returns the translated error for the adapter to render.
func (t *Tracker) Track(ctx context.Context, err error, fields ...zap.Field) *Error {
	appErr := Translate(err)
	if appErr == nil {
		return nil
	}

	logFields := make([]zap.Field, 0, len(fields)+4)
	logFields = append(logFields,
		zap.String("kind", string(appErr.Kind)),
		zap.String("message", appErr.Message),
		zap.Error(err),
	)
	if requestID := auth.GetRequestID(ctx); requestID != "" {
		logFields = append(logFields, zap.String("request_id", requestID))
	}
	logFields = append(logFields, fields...)

	switch appErr.Kind {
	case KindInternal, KindTimeout:
		t.logger.Error("request failed", logFields...)
	default:
		t.logger.Warn("request rejected", logFields...)
	}
	return appErr
}

// Warn reports a non-critical problem that did not fail the request.
func (t *Tracker) Warn(ctx context.Context, message string, fields ...zap.Field) {
	if requestID := auth.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	t.logger.Warn(message, fields...)
}
