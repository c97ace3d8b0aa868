package domain

import "VillageEmpire/internal/shared/gameconfig/building"

// Resource 资源种类。
type Resource string

const (
	Wood  Resource = "wood"
	Stone Resource = "stone"
	Iron  Resource = "iron"
	Food  Resource = "food"
)

// AllResources 固定遍历顺序。
var AllResources = []Resource{Wood, Stone, Iron, Food}

// Resources 村庄资源库存，任何变更后各项都必须 >= 0。
type Resources struct {
	Wood  int64 `json:"wood"`
	Stone int64 `json:"stone"`
	Iron  int64 `json:"iron"`
	Food  int64 `json:"food"`
}

func ResourcesFrom(r building.Resources) Resources {
	return Resources{Wood: r.Wood, Stone: r.Stone, Iron: r.Iron, Food: r.Food}
}

func (r Resources) Get(k Resource) int64 {
	switch k {
	case Wood:
		return r.Wood
	case Stone:
		return r.Stone
	case Iron:
		return r.Iron
	case Food:
		return r.Food
	}
	return 0
}

func (r *Resources) Set(k Resource, v int64) {
	switch k {
	case Wood:
		r.Wood = v
	case Stone:
		r.Stone = v
	case Iron:
		r.Iron = v
	case Food:
		r.Food = v
	}
}

func (r Resources) Add(o Resources) Resources {
	return Resources{
		Wood:  r.Wood + o.Wood,
		Stone: r.Stone + o.Stone,
		Iron:  r.Iron + o.Iron,
		Food:  r.Food + o.Food,
	}
}

// Covers 判断库存是否足够支付 cost（逐项比较）。
func (r Resources) Covers(cost Resources) bool {
	return r.Wood >= cost.Wood && r.Stone >= cost.Stone && r.Iron >= cost.Iron && r.Food >= cost.Food
}

// Sub 扣除 cost；任一项不足时返回 false 且不修改。
func (r Resources) Sub(cost Resources) (Resources, bool) {
	if !r.Covers(cost) {
		return r, false
	}
	return Resources{
		Wood:  r.Wood - cost.Wood,
		Stone: r.Stone - cost.Stone,
		Iron:  r.Iron - cost.Iron,
		Food:  r.Food - cost.Food,
	}, true
}

func (r Resources) NonNegative() bool {
	return r.Wood >= 0 && r.Stone >= 0 && r.Iron >= 0 && r.Food >= 0
}

// Rates 每小时产量（派生值，不落库）。
type Rates struct {
	Wood  float64 `json:"wood"`
	Stone float64 `json:"stone"`
	Iron  float64 `json:"iron"`
	Food  float64 `json:"food"`
}

func (r Rates) Get(k Resource) float64 {
	switch k {
	case Wood:
		return r.Wood
	case Stone:
		return r.Stone
	case Iron:
		return r.Iron
	case Food:
		return r.Food
	}
	return 0
}

func (r *Rates) Set(k Resource, v float64) {
	switch k {
	case Wood:
		r.Wood = v
	case Stone:
		r.Stone = v
	case Iron:
		r.Iron = v
	case Food:
		r.Food = v
	}
}

func (r Rates) IsZero() bool {
	return r == Rates{}
}

// Bonus 按资源的加成比例（0.2 = +20%）。
type Bonus = Rates

func BonusFrom(b building.Bonus) Bonus {
	return Bonus{Wood: b.Wood, Stone: b.Stone, Iron: b.Iron, Food: b.Food}
}

// Carry 结算时被 floor 截掉的小数部分，下次结算时补回。
type Carry = Rates
