package actors

import (
	"VillageEmpire/internal/shared/actor/messages"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/engine"
	"VillageEmpire/modules/kit/tracex"
	"context"
	"errors"
	"time"

	"github.com/asynkron/protoactor-go/actor"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// VillageActor 一个 owner 的村庄，所有变更在这里串行执行。
type VillageActor struct {
	state      State
	ownerID    domain.OwnerID
	svc        *app.VillageService
	notifier   Notifier
	opts       Options
	dispatcher *Dispatcher

	// village 写库成功后的最新快照；loaded 且为 nil 表示尚未建村
	village *domain.Village
	loaded  bool

	pollStop chan struct{}
}

type constructionTick struct{}

func (constructionTick) NotInfluenceReceiveTimeout() {}

type resourceTick struct{}

func (resourceTick) NotInfluenceReceiveTimeout() {}

func NewVillageActor(owner domain.OwnerID, svc *app.VillageService, notifier Notifier, opts Options) *VillageActor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &VillageActor{
		state:      None,
		ownerID:    owner,
		svc:        svc,
		notifier:   notifier,
		opts:       opts.withDefaults(),
		dispatcher: NewDispatcher(),
	}
}

func (p *VillageActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopPollLoops()
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopPollLoops()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopPollLoops()
		p.state = Init
		return
	case *actor.ReceiveTimeout:
		ctx.CancelReceiveTimeout()
		if parent := ctx.Parent(); parent != nil {
			ctx.Send(parent, &passivate{owner: p.ownerID, pid: ctx.Self()})
		}
		return
	case constructionTick:
		p.poll(ctx, true)
		return
	case resourceTick:
		p.poll(ctx, false)
		return
	case messages.VillageMessage:
		if p.state != Online {
			ctx.Respond(fail(app.ErrUnavailable.WithMsg("village not online")))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *VillageActor) init(ctx actor.Context) {
	ioCtx, cancel := p.ioContext("")
	defer cancel()
	// 加载失败不退出，下一次请求或资源轮询时重试
	if err := p.ensureLoaded(ioCtx); err != nil {
		ctx.Logger().Error("village load failed", "owner", int64(p.ownerID), "err", err)
	}
	p.state = Online
	ctx.SetReceiveTimeout(p.opts.PassivateAfter)
	p.startPollLoops(ctx)
}

func (p *VillageActor) OwnerID() domain.OwnerID {
	return p.ownerID
}

func (p *VillageActor) Village() *domain.Village {
	return p.village
}

func (p *VillageActor) ensureLoaded(ctx context.Context) error {
	if p.loaded {
		return nil
	}
	v, err := p.svc.Load(ctx, p.ownerID)
	switch {
	case err == nil:
		p.village = v
	case errors.Is(err, app.ErrNotFound):
		p.village = nil
	default:
		return err
	}
	p.loaded = true
	return nil
}

// dropIfStale 版本冲突说明存档已被他人改过，写超时则不知道是否落库；
// 两种情况都作废缓存，下次请求或资源轮询从存储重新加载。
func (p *VillageActor) dropIfStale(err error) bool {
	if !errors.Is(err, domain.ErrVersionConflict) && !errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	p.village = nil
	p.loaded = false
	return true
}

func (p *VillageActor) ioContext(traceID string) (context.Context, context.CancelFunc) {
	ctx := context.Background()
	if traceID != "" {
		ctx = tracex.WithTraceID(ctx, traceID)
	}
	ctx = tracex.WithSpanID(ctx, "village")
	return context.WithTimeout(ctx, p.opts.IOTimeout)
}

// poll 由轮询消息驱动。onlyDue 为 true 时只在有到期建造时才结算。
func (p *VillageActor) poll(ctx actor.Context, onlyDue bool) {
	if p.state != Online {
		return
	}
	ioCtx, cancel := p.ioContext("")
	defer cancel()
	if !p.loaded && !onlyDue {
		if err := p.ensureLoaded(ioCtx); err != nil {
			ctx.Logger().Warn("village reload failed", "owner", int64(p.ownerID), "err", err)
			return
		}
	}
	if p.village == nil {
		return
	}
	if onlyDue && !engine.HasDue(p.village, p.svc.Now()) {
		return
	}

	next, out, err := p.svc.Refresh(ioCtx, p.village)
	if err != nil {
		// 普通写库失败保持缓存不变，下个周期再试
		stale := p.dropIfStale(err)
		ctx.Logger().Error("village poll refresh failed", "owner", int64(p.ownerID), "stale", stale, "err", err)
		return
	}
	p.village = next
	p.notify(out)
}

func (p *VillageActor) notify(out engine.Outcome) {
	if len(out.Completed) == 0 && !out.Credited {
		return
	}
	view := p.svc.View(p.village)
	if len(out.Completed) > 0 {
		p.notifier.ConstructionComplete(p.ownerID, view, out.Completed)
	}
	if out.Credited {
		p.notifier.ResourcesUpdated(p.ownerID, view)
	}
}

func (p *VillageActor) startPollLoops(ctx actor.Context) {
	if p.pollStop != nil {
		return
	}
	p.pollStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go tickLoop(p.pollStop, p.opts.ConstructionPoll, func() { root.Send(self, constructionTick{}) })
	go tickLoop(p.pollStop, p.opts.ResourcePoll, func() { root.Send(self, resourceTick{}) })
}

func tickLoop(stop <-chan struct{}, every time.Duration, fire func()) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fire()
		case <-stop:
			return
		}
	}
}

func (p *VillageActor) stopPollLoops() {
	if p.pollStop == nil {
		return
	}
	close(p.pollStop)
	p.pollStop = nil
}
