// Package engine 村庄模拟的纯计算：产量、资源结算、建造进度、加速成本、产量统计。
// 这里的函数不做 IO，也不读取系统时间，所有时间都由调用方以毫秒时间戳传入。
package engine

import "VillageEmpire/internal/shared/gameconfig/building"

// Catalog 引擎只需要的只读配置能力。
type Catalog interface {
	Get(id string) (*building.Entry, bool)
	Archetype(id string) (*building.Archetype, bool)
}

const (
	msPerSecond = int64(1000)
	msPerHour   = float64(3_600_000)
)
