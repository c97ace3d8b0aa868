package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 服务内注入的日志接口，字段统一用 zap.Field。
// WithContext 带上 ctx 里的 trace/span，With 预置固定字段，两者都返回新实例。
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	WithContext(ctx context.Context) Logger
}
