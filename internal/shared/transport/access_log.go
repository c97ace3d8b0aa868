package transport

import (
	"VillageEmpire/modules/kit/logx"
	"VillageEmpire/modules/kit/tracex"
	"context"
	"time"

	"go.uber.org/zap"
)

// accessEntry 随请求 context 传递，handler 写入结果，出口统一落日志。
type accessEntry struct {
	action string
	start  time.Time
	code   BizCode
	reason string
}

type accessKey struct{}

// NewContext ws 消息没有上游 context，以 background 起一条新链路。
func NewContext(action string) context.Context {
	return NewContextWithParent(context.Background(), action)
}

// NewContextWithParent 挂上 access 记录，父 context 的 trace 与取消信号保留。
func NewContextWithParent(parent context.Context, action string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	entry := &accessEntry{action: action, start: time.Now(), code: SystemError}
	return context.WithValue(tracex.Ensure(parent, "edge"), accessKey{}, entry)
}

func entryFrom(ctx context.Context) *accessEntry {
	if ctx == nil {
		return nil
	}
	e, _ := ctx.Value(accessKey{}).(*accessEntry)
	return e
}

// SetBizCode 默认是 SystemError，成功路径必须显式置 OK。
func SetBizCode(ctx context.Context, code BizCode) {
	if e := entryFrom(ctx); e != nil {
		e.code = code
	}
}

// SetErrorReason 空 reason 忽略，不覆盖已有值。
func SetErrorReason(ctx context.Context, reason string) {
	if e := entryFrom(ctx); e != nil && reason != "" {
		e.reason = reason
	}
}

// WriteAccessLog 在请求出口 defer 调用。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	e := entryFrom(ctx)
	if e == nil || log == nil {
		return
	}
	result := "success"
	fields := []zap.Field{zap.Duration("latency", time.Since(e.start))}
	if e.code != OK {
		result = "failure"
		if e.reason != "" {
			fields = append(fields, zap.String("error_reason", e.reason))
		}
	}
	fields = append(fields, zap.String("result", result))
	logx.ReportAccessWithLoggerContext(ctx, log, e.action, int(e.code), fields...)
}
