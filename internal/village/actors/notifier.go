package actors

import (
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/domain"
)

// Notifier 轮询产生变化时推送给在线客户端。
// 在 actor 内同步调用，实现不能阻塞。
type Notifier interface {
	ConstructionComplete(owner domain.OwnerID, view app.VillageView, positions []domain.Position)
	ResourcesUpdated(owner domain.OwnerID, view app.VillageView)
}

type NopNotifier struct{}

func (NopNotifier) ConstructionComplete(domain.OwnerID, app.VillageView, []domain.Position) {}

func (NopNotifier) ResourcesUpdated(domain.OwnerID, app.VillageView) {}
