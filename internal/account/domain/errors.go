package domain

import "VillageEmpire/modules/kit/errx"

type Code = errx.Code

const (
	CodeUserNotFound      Code = "ACCOUNT_USER_NOT_FOUND"
	CodeUserExists        Code = "ACCOUNT_USER_EXISTS"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

// 仓储把底层错误翻译成这几个语义。
var (
	ErrUserNotFound      = errx.NewBiz(CodeUserNotFound, "")
	ErrUserExists        = errx.NewBiz(CodeUserExists, "")
	ErrSystemUnavailable = errx.ErrUnavailable
)
