package app

import (
	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/engine"
)

// BuildingView 客户端展示用的建筑信息。
type BuildingView struct {
	Position     int    `json:"position"`
	BuildingID   string `json:"buildingId"`
	Name         string `json:"name"`
	Level        int    `json:"level"`
	SpeedUpCount int    `json:"speedUpCount"`
	Active       bool   `json:"active"`
	StartMs      int64  `json:"startMs,omitempty"`
	EndMs        int64  `json:"endMs,omitempty"`
	// Progress 仅建造中有值
	Progress        *engine.Progress `json:"progress,omitempty"`
	NextSpeedUpCost domain.Resources `json:"nextSpeedUpCost"`
}

type VillageView struct {
	ID                   int64            `json:"id,string"`
	OwnerID              int64            `json:"ownerId"`
	Name                 string           `json:"name"`
	Archetype            string           `json:"archetype"`
	Level                int              `json:"level"`
	Resources            domain.Resources `json:"resources"`
	Rates                domain.Rates     `json:"rates"`
	SpeedUpPoints        int              `json:"speedUpPoints"`
	LastResourceUpdateMs int64            `json:"lastResourceUpdateMs"`
	Buildings            []BuildingView   `json:"buildings"`
	ServerTimeMs         int64            `json:"serverTimeMs"`
}

// View 生成只读视图，附带当前产量与建造进度。
func (s *VillageService) View(v *domain.Village) VillageView {
	return NewVillageView(v, s.catalog, s.clock())
}

func NewVillageView(v *domain.Village, cat Catalog, nowMs int64) VillageView {
	out := VillageView{Buildings: []BuildingView{}, ServerTimeMs: nowMs}
	if v == nil {
		return out
	}
	out.ID = int64(v.ID)
	out.OwnerID = int64(v.OwnerID)
	out.Name = v.Name
	out.Archetype = v.Archetype
	out.Level = v.Level
	out.Resources = v.Resources
	out.Rates = engine.Rates(v, cat)
	out.SpeedUpPoints = v.SpeedUpPoints
	out.LastResourceUpdateMs = v.LastResourceUpdateMs

	for _, pos := range v.Positions() {
		b := v.Buildings[pos]
		bv := BuildingView{
			Position:     int(pos),
			BuildingID:   b.BuildingID,
			Level:        b.Level,
			SpeedUpCount: b.SpeedUpCount,
			Active:       b.IsActive(),
		}
		if e, ok := cat.Get(b.BuildingID); ok {
			bv.Name = e.Name
		}
		if uc, ok := b.Construction(); ok {
			p := engine.ProgressAt(nowMs, uc.StartMs, uc.EndMs)
			bv.StartMs = uc.StartMs
			bv.EndMs = uc.EndMs
			bv.Progress = &p
			bv.NextSpeedUpCost = engine.SpeedUpCost(b.SpeedUpCount)
		}
		out.Buildings = append(out.Buildings, bv)
	}
	return out
}
