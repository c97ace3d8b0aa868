package logx

import (
	"context"

	"VillageEmpire/modules/kit/tracex"

	"go.uber.org/zap"
)

// ZapLogger 用 *zap.Logger 实现 Logger。
type ZapLogger struct {
	l *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger 传 nil 时退化为 Nop。
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{l: l}
}

// Nop 返回丢弃所有输出的 Logger。
func Nop() Logger {
	return NewZapLogger(nil)
}

func (z *ZapLogger) With(fields ...zap.Field) Logger {
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{l: z.l.With(fields...)}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return z
	}
	fields := make([]zap.Field, 0, 2)
	if tid, ok := tracex.TraceIDFrom(ctx); ok {
		fields = append(fields, zap.String("trace_id", tid))
	}
	if sid, ok := tracex.SpanIDFrom(ctx); ok {
		fields = append(fields, zap.String("span_id", sid))
	}
	return z.With(fields...)
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z *ZapLogger) Info(msg string, fields ...zap.Field)  { z.l.Info(msg, fields...) }
func (z *ZapLogger) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }
func (z *ZapLogger) Error(msg string, fields ...zap.Field) { z.l.Error(msg, fields...) }
