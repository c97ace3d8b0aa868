package handler

import (
	"VillageEmpire/internal/account/app"
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/modules/kit/errx"
	"VillageEmpire/modules/kit/logx"
	"context"
	"errors"
)

// HandleError 返回业务码、文案与对外 reason；系统错误只给兜底文案。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (int, string, string) {
	var e *errx.Error
	errors.As(err, &e)
	reason := e.Reason()
	if reason == "" {
		reason = e.CodeText()
	}
	if reason == "" {
		reason = "UNKNOWN"
	}
	transport.SetErrorReason(ctx, reason)
	metrics.ObserveOp(action, reason)
	logx.ReportErrorWithLoggerContext(ctx, log, action, err)

	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		return transport.Unauthorized, e.Msg(), ""
	case errors.Is(err, app.ErrRejected):
		return transport.Rejected, e.Msg(), e.Reason()
	case errors.Is(err, app.ErrUnavailable):
		return transport.Unavailable, "系统繁忙，请稍后重试", ""
	}
	return transport.SystemError, "系统繁忙，请稍后重试", ""
}
