package handler

import (
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/internal/shared/transport"
	villageactor "VillageEmpire/internal/village/actor"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/modules/kit/logx"
	"context"
	"errors"
)

const busyMsg = "系统繁忙，请稍后重试"

// HandleError 把错误映射为对外业务码与文案，并记录 access 原因与错误日志。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	reason := app.GetErrorReasonCode(err)
	if reason == "" {
		reason = codeText(err)
	}
	transport.SetErrorReason(ctx, reason)
	metrics.ObserveOp(action, reason)
	logx.ReportErrorWithLoggerContext(ctx, log, action, err)

	code := MapErrorToClientCode(err)
	if code < transport.SystemError {
		return code, errorMsg(err)
	}
	return code, busyMsg
}

// MapErrorToClientCode 校验失败 422，无村庄 404，参数错误 400，存储与 actor 故障 5xx。
func MapErrorToClientCode(err error) int {
	switch {
	case err == nil:
		return transport.OK
	case errors.Is(err, app.ErrValidation):
		return transport.Rejected
	case errors.Is(err, app.ErrNotFound):
		return transport.NotFound
	case errors.Is(err, app.ErrReqParamERR):
		return transport.InvalidParam
	case errors.Is(err, app.ErrPersistence), errors.Is(err, app.ErrUnavailable):
		return transport.Unavailable
	}
	var re *villageactor.RuntimeError
	if errors.As(err, &re) {
		return villageactor.CodeFromError(re)
	}
	return transport.SystemError
}

func errorMsg(err error) string {
	var e *app.Error
	if errors.As(err, &e) && e.Msg() != "" {
		return e.Msg()
	}
	return err.Error()
}

func codeText(err error) string {
	var e *app.Error
	if errors.As(err, &e) {
		return string(e.Code())
	}
	var re *villageactor.RuntimeError
	if errors.As(err, &re) {
		return "ACTOR_RUNTIME"
	}
	return "UNKNOWN"
}

// ClientReason 只对校验失败暴露原因码。
func ClientReason(code int, err error) string {
	if code != transport.Rejected {
		return ""
	}
	return app.GetErrorReasonCode(err)
}
