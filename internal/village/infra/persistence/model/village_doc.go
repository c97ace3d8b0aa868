package model

import "VillageEmpire/internal/village/domain"

// ResourcesDoc 资源库存
type ResourcesDoc struct {
	Wood  int64 `bson:"wood"`
	Stone int64 `bson:"stone"`
	Iron  int64 `bson:"iron"`
	Food  int64 `bson:"food"`
}

// VillageDoc mongodb 中一个村庄一个文档，owner_id 唯一。
type VillageDoc struct {
	ID                   int64         `bson:"_id"`
	OwnerID              int64         `bson:"owner_id"`
	Name                 string        `bson:"name"`
	Archetype            string        `bson:"archetype"`
	Level                int           `bson:"level"`
	Resources            ResourcesDoc  `bson:"resources"`
	Carry                RatesDoc      `bson:"carry"`
	Buildings            []BuildingDoc `bson:"buildings"`
	LastResourceUpdateMs int64         `bson:"last_resource_update_ms"`
	SpeedUpPoints        int           `bson:"speed_up_points"`
	Bonuses              RatesDoc      `bson:"bonuses"`
	CreatedAtMs          int64         `bson:"created_at_ms"`
	Version              int64         `bson:"version"`
}

func VillageToDoc(v *domain.Village) VillageDoc {
	return VillageDoc{
		ID:                   int64(v.ID),
		OwnerID:              int64(v.OwnerID),
		Name:                 v.Name,
		Archetype:            v.Archetype,
		Level:                v.Level,
		Resources:            ResourcesDoc(v.Resources),
		Carry:                RatesToDoc(v.Carry),
		Buildings:            BuildingsToDocs(v),
		LastResourceUpdateMs: v.LastResourceUpdateMs,
		SpeedUpPoints:        v.SpeedUpPoints,
		Bonuses:              RatesToDoc(v.Bonuses),
		CreatedAtMs:          v.CreatedAtMs,
		Version:              v.Version,
	}
}

func DocToVillage(d VillageDoc) *domain.Village {
	return &domain.Village{
		ID:                   domain.VillageID(d.ID),
		OwnerID:              domain.OwnerID(d.OwnerID),
		Name:                 d.Name,
		Archetype:            d.Archetype,
		Level:                d.Level,
		Resources:            domain.Resources(d.Resources),
		Carry:                d.Carry.Rates(),
		Buildings:            DocsToBuildings(d.Buildings),
		LastResourceUpdateMs: d.LastResourceUpdateMs,
		SpeedUpPoints:        d.SpeedUpPoints,
		Bonuses:              d.Bonuses.Rates(),
		CreatedAtMs:          d.CreatedAtMs,
		Version:              d.Version,
	}
}
