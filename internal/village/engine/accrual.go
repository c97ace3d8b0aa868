package engine

import (
	"math"
	"sort"

	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/village/domain"
)

// floor 前的容差，吸收分段结算时的浮点误差
const floorEpsilon = 1e-9

// Accrue 按 elapsedMs 结算一段时间的产出：new = floor(old + carry + rate × hours)。
// 截掉的小数部分作为新的 carry 返回。elapsedMs <= 0 时原样返回。
// 只有 carry 为零时结果才等于 floor(old + rate × hours)，否则可能多出 1。
func Accrue(stock domain.Resources, carry domain.Carry, rates domain.Rates, elapsedMs int64) (domain.Resources, domain.Carry) {
	if elapsedMs <= 0 {
		return stock, carry
	}
	hours := float64(elapsedMs) / msPerHour
	for _, r := range domain.AllResources {
		rate := rates.Get(r)
		if rate <= 0 {
			continue
		}
		exact := carry.Get(r) + rate*hours
		whole := math.Floor(exact + floorEpsilon)
		stock.Set(r, stock.Get(r)+int64(whole))
		carry.Set(r, math.Max(0, exact-whole))
	}
	return stock, carry
}

// Outcome 一次推进的结果。
type Outcome struct {
	// Completed 本次转为 Active 的位置，按建成时间排序
	Completed []domain.Position
	// Credited 有整数资源入账
	Credited bool
	// Initialised 首次设置结算时间戳
	Initialised bool
}

// Changed 是否需要写库。
func (o Outcome) Changed() bool {
	return o.Initialised || o.Credited || len(o.Completed) > 0
}

// Advance 把村庄推进到 nowMs（原地修改，调用方负责先 Clone）。
//
// 区间按各建筑的建成时间切分：建筑从 EndMs 起参与产出。
// nowMs 早于上次结算时间（时钟回拨）时不入账，时间戳也不回退。
func Advance(v *domain.Village, nowMs int64, cat Catalog) Outcome {
	var out Outcome
	if v == nil {
		return out
	}
	if v.LastResourceUpdateMs <= 0 {
		v.LastResourceUpdateMs = nowMs
		out.Initialised = true
		for _, d := range dueConstructions(v, nowMs) {
			v.Buildings[d.pos] = v.Buildings[d.pos].Activate()
			out.Completed = append(out.Completed, d.pos)
		}
		return out
	}

	before := v.Resources
	cursor := v.LastResourceUpdateMs
	for _, d := range dueConstructions(v, nowMs) {
		if d.endMs > cursor {
			v.Resources, v.Carry = Accrue(v.Resources, v.Carry, Rates(v, cat), d.endMs-cursor)
			cursor = d.endMs
		}
		v.Buildings[d.pos] = v.Buildings[d.pos].Activate()
		out.Completed = append(out.Completed, d.pos)
	}
	if nowMs > cursor {
		v.Resources, v.Carry = Accrue(v.Resources, v.Carry, Rates(v, cat), nowMs-cursor)
		cursor = nowMs
	}
	if cursor > v.LastResourceUpdateMs {
		v.LastResourceUpdateMs = cursor
	}
	out.Credited = v.Resources != before
	return out
}

type due struct {
	pos   domain.Position
	endMs int64
}

func dueConstructions(v *domain.Village, nowMs int64) []due {
	var out []due
	for pos, b := range v.Buildings {
		uc, ok := b.Construction()
		if ok && nowMs >= uc.EndMs {
			out = append(out, due{pos: pos, endMs: uc.EndMs})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].endMs != out[j].endMs {
			return out[i].endMs < out[j].endMs
		}
		return out[i].pos < out[j].pos
	})
	return out
}

// HasDue 是否有建造已到期但仍未转为 Active 的建筑。
func HasDue(v *domain.Village, nowMs int64) bool {
	if v == nil {
		return false
	}
	for _, b := range v.Buildings {
		if uc, ok := b.Construction(); ok && nowMs >= uc.EndMs {
			return true
		}
	}
	return false
}

func lookup(cat Catalog, id string) (*building.Entry, bool) {
	if cat == nil {
		return nil, false
	}
	e, ok := cat.Get(id)
	if !ok || e == nil {
		return nil, false
	}
	return e, true
}
