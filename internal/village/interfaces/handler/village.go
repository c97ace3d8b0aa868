package handler

import (
	"VillageEmpire/internal/shared/session"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/engine"
	"context"
)

// Villages 接口层依赖的村庄操作，由 actor runtime 实现。
type Villages interface {
	CreateVillage(ctx context.Context, owner int64, name, archetype string) (*app.VillageView, error)
	Load(ctx context.Context, owner int64) (*app.VillageView, error)
	Build(ctx context.Context, owner int64, position int, buildingID string) (*app.VillageView, error)
	Complete(ctx context.Context, owner int64, position int) (*app.VillageView, error)
	SpeedUpWithResources(ctx context.Context, owner int64, position int) (*app.VillageView, error)
	SpeedUpWithPoint(ctx context.Context, owner int64, position int) (*app.VillageView, error)
	Destroy(ctx context.Context, owner int64, position int) (*app.VillageView, error)
	Upgrade(ctx context.Context, owner int64, position int) (*app.VillageView, error)
	Stats(ctx context.Context, owner int64) (*engine.Stats, error)
}

// Village http/ws 两套处理器共享的依赖。
type Village struct {
	Villages Villages
	Catalog  app.Catalog
	Session  session.Manager
	Log      app.Logger
}

func NewVillage(v Villages, cat app.Catalog, s session.Manager, log app.Logger) *Village {
	return &Village{Villages: v, Catalog: cat, Session: s, Log: log}
}
