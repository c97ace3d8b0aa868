package actors

import (
	"VillageEmpire/internal/shared/actor/messages"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/domain"
	"context"

	"github.com/asynkron/protoactor-go/actor"
)

type VillageHandler struct{}

// 全局实例
var VH = &VillageHandler{}

type mutation func(ctx context.Context, cur *domain.Village) (*domain.Village, error)

func (h *VillageHandler) HandleCreate(ctx actor.Context, p *VillageActor, req *messages.HVCreateVillage) {
	ioCtx, cancel := p.ioContext(req.TraceID())
	defer cancel()
	if err := p.ensureLoaded(ioCtx); err != nil {
		ctx.Respond(fail(err))
		return
	}
	if p.village != nil {
		ctx.Respond(ok(p.svc.View(p.village)))
		return
	}
	v, err := p.svc.CreateVillage(ioCtx, p.ownerID, req.Name, req.Archetype)
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	p.village = v
	ctx.Respond(ok(p.svc.View(v)))
}

// HandleLoad 读取前先结算，到期建筑转为 Active。
func (h *VillageHandler) HandleLoad(ctx actor.Context, p *VillageActor, req *messages.HVLoadVillage) {
	if !h.refresh(ctx, p, req.TraceID()) {
		return
	}
	ctx.Respond(ok(p.svc.View(p.village)))
}

func (h *VillageHandler) HandleStats(ctx actor.Context, p *VillageActor, req *messages.HVStats) {
	if !h.refresh(ctx, p, req.TraceID()) {
		return
	}
	stats := p.svc.ProductionStats(p.village)
	ctx.Respond(&Reply{Stats: &stats})
}

func (h *VillageHandler) HandleBuild(ctx actor.Context, p *VillageActor, req *messages.HVBuild) {
	h.mutate(ctx, p, req.TraceID(), func(c context.Context, cur *domain.Village) (*domain.Village, error) {
		return p.svc.Build(c, cur, domain.Position(req.Position), req.BuildingID)
	})
}

func (h *VillageHandler) HandleComplete(ctx actor.Context, p *VillageActor, req *messages.HVComplete) {
	h.mutate(ctx, p, req.TraceID(), func(c context.Context, cur *domain.Village) (*domain.Village, error) {
		return p.svc.Complete(c, cur, domain.Position(req.Position))
	})
}

func (h *VillageHandler) HandleSpeedUpResources(ctx actor.Context, p *VillageActor, req *messages.HVSpeedUpResources) {
	h.mutate(ctx, p, req.TraceID(), func(c context.Context, cur *domain.Village) (*domain.Village, error) {
		return p.svc.SpeedUpWithResources(c, cur, domain.Position(req.Position))
	})
}

func (h *VillageHandler) HandleSpeedUpPoint(ctx actor.Context, p *VillageActor, req *messages.HVSpeedUpPoint) {
	h.mutate(ctx, p, req.TraceID(), func(c context.Context, cur *domain.Village) (*domain.Village, error) {
		return p.svc.SpeedUpWithPoint(c, cur, domain.Position(req.Position))
	})
}

func (h *VillageHandler) HandleDestroy(ctx actor.Context, p *VillageActor, req *messages.HVDestroy) {
	h.mutate(ctx, p, req.TraceID(), func(c context.Context, cur *domain.Village) (*domain.Village, error) {
		return p.svc.Destroy(c, cur, domain.Position(req.Position))
	})
}

func (h *VillageHandler) HandleUpgrade(ctx actor.Context, p *VillageActor, req *messages.HVUpgrade) {
	h.mutate(ctx, p, req.TraceID(), func(c context.Context, cur *domain.Village) (*domain.Village, error) {
		return p.svc.Upgrade(c, cur, domain.Position(req.Position))
	})
}

// mutate 写库成功才替换缓存；失败时缓存保持原样，存档被改过或结果未知时作废缓存。
func (h *VillageHandler) mutate(ctx actor.Context, p *VillageActor, traceID string, fn mutation) {
	ioCtx, cancel := p.ioContext(traceID)
	defer cancel()
	if err := p.ensureLoaded(ioCtx); err != nil {
		ctx.Respond(fail(err))
		return
	}
	if p.village == nil {
		ctx.Respond(fail(app.ErrNotFound.WithData("owner", int64(p.ownerID))))
		return
	}
	next, err := fn(ioCtx, p.village)
	if err != nil {
		p.dropIfStale(err)
		ctx.Respond(fail(err))
		return
	}
	p.village = next
	ctx.Respond(ok(p.svc.View(next)))
}

func (h *VillageHandler) refresh(ctx actor.Context, p *VillageActor, traceID string) bool {
	ioCtx, cancel := p.ioContext(traceID)
	defer cancel()
	if err := p.ensureLoaded(ioCtx); err != nil {
		ctx.Respond(fail(err))
		return false
	}
	if p.village == nil {
		ctx.Respond(fail(app.ErrNotFound.WithData("owner", int64(p.ownerID))))
		return false
	}
	next, _, err := p.svc.Refresh(ioCtx, p.village)
	if err != nil {
		p.dropIfStale(err)
		ctx.Respond(fail(err))
		return false
	}
	p.village = next
	return true
}
