package actors

import (
	"VillageEmpire/internal/shared/actor/messages"
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/domain"

	"github.com/asynkron/protoactor-go/actor"
)

type ManagerActor struct {
	svc      *app.VillageService
	notifier Notifier
	opts     Options
	villages map[domain.OwnerID]*actor.PID // owner -> actor.pid
}

// passivate 村庄 actor 空闲时发给 manager，由 manager 摘除路由后停止它。
type passivate struct {
	owner domain.OwnerID
	pid   *actor.PID
}

func NewManagerActor(svc *app.VillageService, notifier Notifier, opts Options) *ManagerActor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ManagerActor{
		svc:      svc,
		notifier: notifier,
		opts:     opts.withDefaults(),
		villages: make(map[domain.OwnerID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *passivate:
		if pid, ok := m.villages[msg.owner]; ok && pid.Equal(msg.pid) {
			delete(m.villages, msg.owner)
			// PoisonPill 排在邮箱末尾，已转发的请求仍会被处理
			ctx.Poison(msg.pid)
		}
	case *actor.Terminated:
		// 子 actor 无论是被钝化还是异常退出都只会到这里一次
		metrics.VillageActors.Dec()
		for owner, pid := range m.villages {
			if pid.Equal(msg.Who) {
				delete(m.villages, owner)
				break
			}
		}
	case messages.VillageMessage:
		owner, ok := toOwnerID(msg.OwnerID())
		if !ok {
			ctx.Respond(fail(app.ErrReqParamERR.WithMsg("invalid owner_id")))
			return
		}
		ctx.Forward(m.getOrSpawn(ctx, owner))
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, owner domain.OwnerID) *actor.PID {
	if pid, ok := m.villages[owner]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewVillageActor(owner, m.svc, m.notifier, m.opts)
	})
	// ManagerActor 创建子 actor，子 actor 退出时会收到 Terminated
	pid := ctx.Spawn(props)
	m.villages[owner] = pid
	metrics.VillageActors.Inc()
	return pid
}

func toOwnerID(raw int64) (domain.OwnerID, bool) {
	if raw <= 0 {
		return 0, false
	}
	return domain.OwnerID(raw), true
}
