// Package tracex 在 context 上携带 trace/span，日志适配器据此输出 trace_id。
package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type ctxKey uint8

const (
	traceKey ctxKey = iota
	spanKey
)

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey, id)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	return lookup(ctx, traceKey)
}

func WithSpanID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, spanKey, id)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	return lookup(ctx, spanKey)
}

func lookup(ctx context.Context, k ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, _ := ctx.Value(k).(string)
	return s, s != ""
}

// NewTraceID 32 位 hex，随机源失败时返回空串。
func NewTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// Ensure 缺 trace 时补一个新的，span 非空时覆盖。
// 轮询、推送等没有上游请求的链路从这里起头。
func Ensure(ctx context.Context, span string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := TraceIDFrom(ctx); !ok {
		if id := NewTraceID(); id != "" {
			ctx = WithTraceID(ctx, id)
		}
	}
	if span == "" {
		return ctx
	}
	return WithSpanID(ctx, span)
}
