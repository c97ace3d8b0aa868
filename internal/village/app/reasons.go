package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 校验失败 reason，接口层原样返回给客户端。
	ReasonInsufficientResources = NewReason("INSUFFICIENT_RESOURCES", "资源不足")
	ReasonInsufficientLevel     = NewReason("INSUFFICIENT_LEVEL", "村庄等级不足")
	ReasonPositionOccupied      = NewReason("POSITION_OCCUPIED", "该位置已有建筑")
	ReasonPositionEmpty         = NewReason("POSITION_EMPTY", "该位置没有建筑")
	ReasonInvalidPosition       = NewReason("INVALID_POSITION", "位置超出范围")
	ReasonUnknownBuilding       = NewReason("UNKNOWN_BUILDING", "未知建筑")
	ReasonUnknownArchetype      = NewReason("UNKNOWN_ARCHETYPE", "未知村庄类型")
	ReasonInvalidName           = NewReason("INVALID_NAME", "村庄名称不合法")
	ReasonInsufficientPoints    = NewReason("INSUFFICIENT_SPEED_UP_POINTS", "加速点数不足")
	ReasonNotUnderConstruction  = NewReason("NOT_UNDER_CONSTRUCTION", "建筑不在建造中")
	ReasonSpeedUpTooLate        = NewReason("SPEED_UP_TOO_LATE", "剩余时间不足 10 秒，无需加速")
	ReasonConstructionRunning   = NewReason("CONSTRUCTION_IN_PROGRESS", "建造尚未完成")
	ReasonUpgradeNotAvailable   = NewReason("UPGRADE_NOT_AVAILABLE", "升级功能暂未开放")
)

var (
	// 技术错误 reason，用于日志与排障。
	ReasonRepoReadFail    = NewReason("VILLAGE_REPO_READ_FAIL", "村庄读取失败")
	ReasonRepoWriteFail   = NewReason("VILLAGE_REPO_WRITE_FAIL", "村庄写入失败")
	ReasonVersionConflict = NewReason("VILLAGE_VERSION_CONFLICT", "村庄存档版本冲突")
	ReasonIDIssue         = NewReason("VILLAGE_ID_ISSUE", "村庄 id 生成失败")
)
