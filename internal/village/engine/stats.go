package engine

import (
	"math"

	"VillageEmpire/internal/village/domain"
)

// LevelGrowth 每升一级产量 +20%（复利）。
const LevelGrowth = 1.2

type BuildingProduction struct {
	Position   domain.Position `json:"position"`
	BuildingID string          `json:"buildingId"`
	Level      int             `json:"level"`
	Production domain.Rates    `json:"production"`
}

// Stats 产量统计，只读视图。
type Stats struct {
	Buildings []BuildingProduction `json:"buildings"`
	Totals    domain.Rates         `json:"totals"`
}

// ProductionStats 每栋 Active 建筑贡献 base × 1.2^(level−1)，汇总后乘以村庄加成。
func ProductionStats(v *domain.Village, cat Catalog) Stats {
	out := Stats{Buildings: []BuildingProduction{}}
	if v == nil {
		return out
	}
	for _, pos := range v.Positions() {
		b := v.Buildings[pos]
		if !b.IsActive() {
			continue
		}
		e, ok := lookup(cat, b.BuildingID)
		if !ok {
			continue
		}
		factor := math.Pow(LevelGrowth, float64(max(b.Level, 1)-1))
		base := domain.ResourcesFrom(e.Production)

		row := BuildingProduction{Position: pos, BuildingID: b.BuildingID, Level: b.Level}
		for _, r := range domain.AllResources {
			amount := float64(base.Get(r)) * factor
			row.Production.Set(r, amount)
			out.Totals.Set(r, out.Totals.Get(r)+amount)
		}
		out.Buildings = append(out.Buildings, row)
	}
	for _, r := range domain.AllResources {
		out.Totals.Set(r, out.Totals.Get(r)*(1+v.Bonuses.Get(r)))
	}
	return out
}
