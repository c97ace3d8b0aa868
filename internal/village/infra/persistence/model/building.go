package model

import "VillageEmpire/internal/village/domain"

// BuildingDoc 一个格子上的建筑。Active=true 时 StartMs/EndMs 为 0。
type BuildingDoc struct {
	Position     int    `bson:"position" json:"position"`
	BuildingID   string `bson:"building_id" json:"building_id"`
	Level        int    `bson:"level" json:"level"`
	SpeedUpCount int    `bson:"speed_up_count" json:"speed_up_count"`
	Active       bool   `bson:"active" json:"active"`
	StartMs      int64  `bson:"start_ms,omitempty" json:"start_ms,omitempty"`
	EndMs        int64  `bson:"end_ms,omitempty" json:"end_ms,omitempty"`
}

// RatesDoc 小数类数据（carry、bonus）。
type RatesDoc struct {
	Wood  float64 `bson:"wood" json:"wood"`
	Stone float64 `bson:"stone" json:"stone"`
	Iron  float64 `bson:"iron" json:"iron"`
	Food  float64 `bson:"food" json:"food"`
}

func BuildingsToDocs(v *domain.Village) []BuildingDoc {
	out := make([]BuildingDoc, 0, len(v.Buildings))
	for _, pos := range v.Positions() {
		b := v.Buildings[pos]
		d := BuildingDoc{
			Position:     int(pos),
			BuildingID:   b.BuildingID,
			Level:        b.Level,
			SpeedUpCount: b.SpeedUpCount,
			Active:       true,
		}
		if uc, ok := b.Construction(); ok {
			d.Active = false
			d.StartMs = uc.StartMs
			d.EndMs = uc.EndMs
		}
		out = append(out, d)
	}
	return out
}

func DocsToBuildings(docs []BuildingDoc) map[domain.Position]domain.BuildingInstance {
	out := make(map[domain.Position]domain.BuildingInstance, len(docs))
	for _, d := range docs {
		b := domain.BuildingInstance{
			BuildingID:   d.BuildingID,
			Level:        d.Level,
			SpeedUpCount: d.SpeedUpCount,
			State:        domain.Active{},
		}
		if !d.Active {
			b.State = domain.UnderConstruction{StartMs: d.StartMs, EndMs: d.EndMs}
		}
		out[domain.Position(d.Position)] = b
	}
	return out
}

func RatesToDoc(r domain.Rates) RatesDoc {
	return RatesDoc{Wood: r.Wood, Stone: r.Stone, Iron: r.Iron, Food: r.Food}
}

func (d RatesDoc) Rates() domain.Rates {
	return domain.Rates{Wood: d.Wood, Stone: d.Stone, Iron: d.Iron, Food: d.Food}
}
