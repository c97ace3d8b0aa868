package main

import (
	"fmt"
	"strconv"
	"strings"

	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/engine"
)

const msPerHour = int64(3_600_000)

// Snapshot 推演中某个整点的资源。
type Snapshot struct {
	Hour      int
	Resources domain.Resources
}

// parseBuildings 解析 "woodcutter=3" 形式的参数，按出现顺序占用 0 号位开始的格子。
func parseBuildings(args []string, cat *building.Catalog) (map[domain.Position]domain.BuildingInstance, error) {
	if len(args) > domain.GridSize {
		return nil, fmt.Errorf("最多 %d 栋建筑，收到 %d", domain.GridSize, len(args))
	}
	out := make(map[domain.Position]domain.BuildingInstance, len(args))
	for i, s := range args {
		id, lv, found := strings.Cut(s, "=")
		level := 1
		if found {
			n, err := strconv.Atoi(lv)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("建筑等级不合法: %q", s)
			}
			level = n
		}
		e, ok := cat.Get(id)
		if !ok {
			return nil, fmt.Errorf("未知建筑: %q", id)
		}
		if e.MaxLevel > 0 && level > e.MaxLevel {
			return nil, fmt.Errorf("%s 最高 %d 级", id, e.MaxLevel)
		}
		out[domain.Position(i)] = domain.BuildingInstance{
			BuildingID: id,
			Level:      level,
			State:      domain.Active{},
		}
	}
	return out, nil
}

// project 从初始资源出发，逐小时结算，返回 0..hours 共 hours+1 个快照。
func project(cat *building.Catalog, archetype string, buildings map[domain.Position]domain.BuildingInstance, hours int) (domain.Rates, []Snapshot, error) {
	if _, ok := cat.Archetype(archetype); !ok {
		return domain.Rates{}, nil, fmt.Errorf("未知村庄类型: %q", archetype)
	}
	v := &domain.Village{
		Archetype: archetype,
		Level:     1,
		Resources: app.InitialResources,
		Buildings: buildings,
	}
	rates := engine.Rates(v, cat)

	out := make([]Snapshot, 0, hours+1)
	out = append(out, Snapshot{Hour: 0, Resources: v.Resources})
	stock, carry := v.Resources, v.Carry
	for h := 1; h <= hours; h++ {
		stock, carry = engine.Accrue(stock, carry, rates, msPerHour)
		out = append(out, Snapshot{Hour: h, Resources: stock})
	}
	return rates, out, nil
}
