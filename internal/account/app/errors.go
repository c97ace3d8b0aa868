package app

import "VillageEmpire/modules/kit/errx"

type Code = errx.Code

const (
	CodeInvalidCredentials Code = "AUTH_INVALID_CREDENTIAL"
	CodeRejected           Code = "ACCOUNT_REJECTED"
	CodeUnavailable        Code = errx.CodeUnavailable
	CodeInternal           Code = errx.CodeInternal
)

type Error = errx.Error

var (
	ErrInvalidCredentials = errx.NewBiz(CodeInvalidCredentials, ReasonInvalidCredentials.Message).WithReason(ReasonInvalidCredentials)
	// ErrRejected 注册参数或重名，具体见 reason
	ErrRejected    = errx.NewBiz(CodeRejected, "注册失败")
	ErrUnavailable = errx.ErrUnavailable
	ErrInternal    = errx.ErrInternal
)

func reject(r Reason) *Error {
	return ErrRejected.WithReason(r).WithMsg(r.Message)
}
