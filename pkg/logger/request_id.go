package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// NewRequestIDContext сохраняет идентификатор запроса; пустой заменяется новым UUID.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

func GenerateRequestID() string {
	return uuid.New().String()
}

// ForRequest возвращает logger запроса: request_id из ctx записан в его поля один раз,
// а остальные поля можно добавить через fields. Без request_id в ctx добавляются только fields.
func (l *Logger) ForRequest(ctx context.Context, fields ...zap.Field) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l.With(fields...)
	}
	scoped := l.With(fields...).With(zap.String(RequestID, id))
	scoped.scoped = true
	return scoped
}
