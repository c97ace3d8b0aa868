package engine

import (
	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/village/domain"
)

// Progress 建造倒计时，由 (now, start, end) 纯函数推导。
type Progress struct {
	RemainingMs int64   `json:"remainingMs"`
	Fraction    float64 `json:"fraction"`
	Done        bool    `json:"done"`
}

// ProgressAt 当 now >= end 时 Done，且不会更早。
func ProgressAt(nowMs, startMs, endMs int64) Progress {
	if nowMs >= endMs {
		return Progress{RemainingMs: 0, Fraction: 1, Done: true}
	}
	p := Progress{RemainingMs: endMs - nowMs}
	total := endMs - startMs
	if total <= 0 {
		return p
	}
	elapsed := nowMs - startMs
	if elapsed > 0 {
		p.Fraction = float64(elapsed) / float64(total)
	}
	return p
}

// StartConstruction 新建筑的建造窗口：[now, now + buildTime 秒)。
func StartConstruction(e *building.Entry, nowMs int64) domain.BuildingInstance {
	return domain.NewConstruction(e.ID, nowMs, nowMs+e.BuildTime*msPerSecond)
}
