package model

import "VillageEmpire/internal/village/domain"

// Village mysql 行模型，建筑、carry 与加成以 JSON 列保存。
type Village struct {
	ID                   int64         `gorm:"column:id;type:bigint;primaryKey;autoIncrement:false;comment:村庄id" json:"id"`
	OwnerID              int64         `gorm:"column:owner_id;type:bigint;not null;uniqueIndex:uk_owner;comment:用户UID" json:"owner_id"`
	Name                 string        `gorm:"column:name;type:varchar(64);not null;comment:村庄名" json:"name"`
	Archetype            string        `gorm:"column:archetype;type:varchar(32);not null;comment:村庄类型" json:"archetype"`
	Level                int           `gorm:"column:level;type:int;not null;default:1;comment:村庄等级" json:"level"`
	Wood                 int64         `gorm:"column:wood;type:bigint;not null;comment:木" json:"wood"`
	Stone                int64         `gorm:"column:stone;type:bigint;not null;comment:石头" json:"stone"`
	Iron                 int64         `gorm:"column:iron;type:bigint;not null;comment:铁" json:"iron"`
	Food                 int64         `gorm:"column:food;type:bigint;not null;comment:粮食" json:"food"`
	Carry                RatesDoc      `gorm:"column:carry;type:json;serializer:json;comment:产出小数部分" json:"carry"`
	Buildings            []BuildingDoc `gorm:"column:buildings;type:json;serializer:json;comment:建筑" json:"buildings"`
	Bonuses              RatesDoc      `gorm:"column:bonuses;type:json;serializer:json;comment:村庄加成" json:"bonuses"`
	SpeedUpPoints        int           `gorm:"column:speed_up_points;type:int;not null;default:0;comment:加速点数" json:"speed_up_points"`
	LastResourceUpdateMs int64         `gorm:"column:last_resource_update_ms;type:bigint;not null;comment:上次结算时间" json:"last_resource_update_ms"`
	CreatedAtMs          int64         `gorm:"column:created_at_ms;type:bigint;not null" json:"created_at_ms"`
	Version              int64         `gorm:"column:version;type:bigint;not null;default:1;comment:存档版本" json:"version"`
}

func (v *Village) TableName() string {
	return "village"
}

// SaveColumns Save 时更新的列，其余字段创建后不再变化。
var SaveColumns = []string{
	"level", "wood", "stone", "iron", "food", "carry", "buildings",
	"speed_up_points", "last_resource_update_ms", "version",
}

func VillageToRow(v *domain.Village) *Village {
	return &Village{
		ID:                   int64(v.ID),
		OwnerID:              int64(v.OwnerID),
		Name:                 v.Name,
		Archetype:            v.Archetype,
		Level:                v.Level,
		Wood:                 v.Resources.Wood,
		Stone:                v.Resources.Stone,
		Iron:                 v.Resources.Iron,
		Food:                 v.Resources.Food,
		Carry:                RatesToDoc(v.Carry),
		Buildings:            BuildingsToDocs(v),
		Bonuses:              RatesToDoc(v.Bonuses),
		SpeedUpPoints:        v.SpeedUpPoints,
		LastResourceUpdateMs: v.LastResourceUpdateMs,
		CreatedAtMs:          v.CreatedAtMs,
		Version:              v.Version,
	}
}

func RowToVillage(m *Village) *domain.Village {
	return &domain.Village{
		ID:        domain.VillageID(m.ID),
		OwnerID:   domain.OwnerID(m.OwnerID),
		Name:      m.Name,
		Archetype: m.Archetype,
		Level:     m.Level,
		Resources: domain.Resources{
			Wood:  m.Wood,
			Stone: m.Stone,
			Iron:  m.Iron,
			Food:  m.Food,
		},
		Carry:                m.Carry.Rates(),
		Buildings:            DocsToBuildings(m.Buildings),
		LastResourceUpdateMs: m.LastResourceUpdateMs,
		SpeedUpPoints:        m.SpeedUpPoints,
		Bonuses:              m.Bonuses.Rates(),
		CreatedAtMs:          m.CreatedAtMs,
		Version:              m.Version,
	}
}
