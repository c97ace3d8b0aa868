package domain

import "sort"

type VillageID int64

type OwnerID int64

// Village 玩家村庄，每个账号一个。
type Village struct {
	ID        VillageID
	OwnerID   OwnerID
	Name      string
	Archetype string
	Level     int
	Resources Resources
	// Carry 累积产出的小数部分
	Carry                Carry
	Buildings            map[Position]BuildingInstance
	LastResourceUpdateMs int64
	SpeedUpPoints        int
	// Bonuses 村庄自身的资源加成，可为空
	Bonuses     Bonus
	CreatedAtMs int64
	// Version 存档版本，每次成功写入 +1
	Version int64
}

// Clone 深拷贝，所有变更都在副本上进行，写库成功后才替换。
func (v *Village) Clone() *Village {
	if v == nil {
		return nil
	}
	out := *v
	out.Buildings = make(map[Position]BuildingInstance, len(v.Buildings))
	for pos, b := range v.Buildings {
		out.Buildings[pos] = b
	}
	return &out
}

func (v *Village) Building(pos Position) (BuildingInstance, bool) {
	if v == nil || v.Buildings == nil {
		return BuildingInstance{}, false
	}
	b, ok := v.Buildings[pos]
	return b, ok
}

func (v *Village) PutBuilding(pos Position, b BuildingInstance) {
	if v.Buildings == nil {
		v.Buildings = make(map[Position]BuildingInstance)
	}
	v.Buildings[pos] = b
}

func (v *Village) RemoveBuilding(pos Position) {
	delete(v.Buildings, pos)
}

// Positions 已占用的格子，升序。
func (v *Village) Positions() []Position {
	out := make([]Position, 0, len(v.Buildings))
	for pos := range v.Buildings {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
