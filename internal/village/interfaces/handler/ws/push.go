package ws

import (
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/internal/shared/session"
	"VillageEmpire/internal/village/actors"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/interfaces/handler/dto"
)

const (
	PushConstructionComplete = "village.constructionComplete"
	PushResources            = "village.resources"
)

// PushNotifier 把轮询结果推给在线的村主，离线直接丢弃。
type PushNotifier struct {
	session session.Manager
}

func NewPushNotifier(s session.Manager) *PushNotifier {
	return &PushNotifier{session: s}
}

var _ actors.Notifier = (*PushNotifier)(nil)

func (n *PushNotifier) ConstructionComplete(owner domain.OwnerID, view app.VillageView, positions []domain.Position) {
	metrics.ConstructionsCompleted.Add(float64(len(positions)))
	ps := make([]int, 0, len(positions))
	for _, p := range positions {
		ps = append(ps, int(p))
	}
	n.session.Push(int64(owner), PushConstructionComplete, dto.ConstructionCompletePush{Positions: ps, Village: view})
}

func (n *PushNotifier) ResourcesUpdated(owner domain.OwnerID, view app.VillageView) {
	n.session.Push(int64(owner), PushResources, view)
}
