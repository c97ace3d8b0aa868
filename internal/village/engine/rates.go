package engine

import "VillageEmpire/internal/village/domain"

// BaseRates 每个村庄的基础时产。
var BaseRates = domain.Rates{Wood: 10, Stone: 7, Iron: 8, Food: 12}

// Rates 计算当前每小时产量：
// base × (1 + 村庄类型加成) × (1 + 村庄加成) + Σ(等级 × 每级产量)，只统计 Active 建筑。
func Rates(v *domain.Village, cat Catalog) domain.Rates {
	if v == nil {
		return domain.Rates{}
	}
	arch := archetypeBonus(v.Archetype, cat)

	var out domain.Rates
	for _, r := range domain.AllResources {
		out.Set(r, BaseRates.Get(r)*(1+arch.Get(r))*(1+v.Bonuses.Get(r)))
	}

	// 按位置顺序累加，保证浮点结果稳定
	for _, pos := range v.Positions() {
		b := v.Buildings[pos]
		if !b.IsActive() {
			continue
		}
		e, ok := lookup(cat, b.BuildingID)
		if !ok {
			continue
		}
		prod := domain.ResourcesFrom(e.Production)
		for _, r := range domain.AllResources {
			out.Set(r, out.Get(r)+float64(b.Level)*float64(prod.Get(r)))
		}
	}
	return out
}

func archetypeBonus(id string, cat Catalog) domain.Bonus {
	if cat == nil || id == "" {
		return domain.Bonus{}
	}
	a, ok := cat.Archetype(id)
	if !ok || a == nil {
		return domain.Bonus{}
	}
	return domain.BonusFrom(a.Bonus)
}
