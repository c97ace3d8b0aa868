package app

import (
	"errors"

	"VillageEmpire/modules/kit/errx"
)

type Code = errx.Code

const (
	// CodeValidation 本地校验失败，状态未被修改。
	CodeValidation Code = "VILLAGE_VALIDATION_FAILED"
	// CodeNotFound 用户没有村庄。
	CodeNotFound Code = "VILLAGE_NOT_FOUND"
	// CodePersistence 读写存储失败，本次操作已放弃。
	CodePersistence Code = "VILLAGE_PERSISTENCE_FAILED"
	CodeUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

var (
	ErrValidation  = errx.NewBiz(CodeValidation, "操作不合法")
	ErrNotFound    = errx.NewBiz(CodeNotFound, "村庄不存在")
	ErrPersistence = errx.NewSys(CodePersistence, "村庄存档失败")
	ErrUnavailable = errx.ErrUnavailable
	ErrReqParamERR = errx.ErrReqParamERR
)

// reject 构造带 reason 的校验错误，对外文案取 reason 的描述。
func reject(r Reason) *Error {
	return ErrValidation.WithReason(r).WithMsg(r.Message)
}

// GetErrorReasonCode 读取错误链上的 reason。
func GetErrorReasonCode(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Reason()
}
