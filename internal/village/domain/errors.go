package domain

import "VillageEmpire/modules/kit/errx"

// Code 领域错误码；仓储实现把底层错误转换为这些语义。
type Code = errx.Code

const (
	CodeVillageNotFound   Code = "VILLAGE_NOT_FOUND"
	CodeVillageExists     Code = "VILLAGE_EXISTS"
	CodeVersionConflict   Code = "VILLAGE_VERSION_CONFLICT"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

var (
	ErrVillageNotFound   = errx.NewBiz(CodeVillageNotFound, "")
	ErrVillageExists     = errx.NewBiz(CodeVillageExists, "")
	ErrVersionConflict   = errx.NewSys(CodeVersionConflict, "村庄存档版本冲突")
	ErrSystemUnavailable = errx.ErrUnavailable
)
