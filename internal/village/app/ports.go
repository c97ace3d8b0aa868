package app

import (
	"context"

	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/village/domain"
	"VillageEmpire/modules/kit/logx"
)

type Logger = logx.Logger

// VillageRepository 村庄存档。
//
// FindByOwner 找不到时返回 domain.ErrVillageNotFound；
// Create 同一 owner 已有村庄时返回 domain.ErrVillageExists；
// Save 只在存档版本等于 expectedVersion 时写入，否则返回 domain.ErrVersionConflict。
type VillageRepository interface {
	FindByOwner(ctx context.Context, owner domain.OwnerID) (*domain.Village, error)
	Create(ctx context.Context, v *domain.Village) error
	Save(ctx context.Context, v *domain.Village, expectedVersion int64) error
}

type Catalog interface {
	Get(id string) (*building.Entry, bool)
	All() []building.Entry
	Archetype(id string) (*building.Archetype, bool)
	Archetypes() []building.Archetype
}

// Clock 返回当前毫秒时间戳。
type Clock func() int64

type IDGen func() int64
