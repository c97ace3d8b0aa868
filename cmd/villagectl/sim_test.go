package main

import (
	"testing"

	"VillageEmpire/internal/shared/gameconfig/building"
)

func TestProject_条顿伐木场三级两小时(t *testing.T) {
	cat, err := building.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	bs, err := parseBuildings([]string{"woodcutter=3"}, cat)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rates, snaps, err := project(cat, "teuton", bs, 2)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	// 10 × 1.2 + 3 × 10
	if rates.Wood < 41.999 || rates.Wood > 42.001 {
		t.Fatalf("wood rate=%v, want 42", rates.Wood)
	}
	if len(snaps) != 3 {
		t.Fatalf("len=%d, want 3", len(snaps))
	}
	if snaps[2].Resources.Wood != 284 {
		t.Fatalf("2 小时后木材=%d, want 284", snaps[2].Resources.Wood)
	}
	if snaps[1].Resources.Stone != 157 {
		t.Fatalf("1 小时后石材=%d, want 157", snaps[1].Resources.Stone)
	}
}

func TestParseBuildings_非法输入(t *testing.T) {
	cat, err := building.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, in := range [][]string{{"castle"}, {"farm=0"}, {"farm=x"}, {"farm=99"}} {
		if _, err := parseBuildings(in, cat); err == nil {
			t.Fatalf("输入 %v 应报错", in)
		}
	}
	if _, _, err := project(cat, "viking", nil, 1); err == nil {
		t.Fatalf("未知村庄类型应报错")
	}
}
