package logx

import (
	"context"

	"VillageEmpire/modules/kit/errx"

	"go.uber.org/zap"
)

// ReportAccessWithLoggerContext 一次请求一条 access 日志，级别随业务码：
// 0 为 INFO，1~499 为 WARN，>=500 为 ERROR。
func ReportAccessWithLoggerContext(ctx context.Context, l Logger, action string, bizCode int, fields ...zap.Field) {
	if l == nil {
		return
	}
	all := append([]zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("biz_code", bizCode),
	}, fields...)

	out := l.WithContext(ctx)
	switch {
	case bizCode == 0:
		out.Info("access", all...)
	case bizCode < 500:
		out.Warn("access", all...)
	default:
		out.Error("access", all...)
	}
}

// ReportErrorWithLoggerContext 接口层统一出口，每个请求只调一次。
// 业务拒绝写 INFO 且不带栈；其余按系统错误写 ERROR，附 cause 链和栈。
func ReportErrorWithLoggerContext(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if err == nil || l == nil {
		return
	}
	if action == "" {
		action = "unknown"
	}
	meta := BuildErrorLog(err)
	if errx.IsBiz(err) {
		reportBiz(ctx, l, action, meta, fields)
		return
	}
	reportSys(ctx, l, action, meta, fields)
}

func reportBiz(ctx context.Context, l Logger, action string, meta ErrorLog, extra []zap.Field) {
	fs := []zap.Field{
		zap.String("err_type", "biz"),
		zap.String("action", action),
	}
	if meta.Reason != "" {
		fs = append(fs, zap.String("reason", meta.Reason))
	}
	if meta.Msg != "" {
		fs = append(fs, zap.String("biz_message", meta.Msg))
	}
	l.WithContext(ctx).Info(summary(action, meta.Reason, meta.Msg), append(fs, extra...)...)
}

func reportSys(ctx context.Context, l Logger, action string, meta ErrorLog, extra []zap.Field) {
	fs := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
		zap.String("error", meta.Error),
	}
	if meta.Code != "" {
		fs = append(fs, zap.String("error_code", meta.Code))
	}
	if meta.Reason != "" {
		fs = append(fs, zap.String("reason", meta.Reason))
	}
	if len(meta.CauseChain) > 0 {
		fs = append(fs, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) > 0 {
		fs = append(fs, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		fs = append(fs, zap.String("origin_caller", meta.Origin), zap.String("stack", meta.Stack))
	}
	l.WithContext(ctx).Error(summary(action, meta.Reason, meta.Error), append(fs, extra...)...)
}

// summary 形如 "village build | INSUFFICIENT_RESOURCES | 资源不足"，空段省略。
func summary(action string, parts ...string) string {
	msg := action
	for _, p := range parts {
		if p != "" {
			msg += " | " + p
		}
	}
	return msg
}
