package actor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/internal/village/actors"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/infra/persistence/memory"
	"VillageEmpire/modules/kit/logx"
)

const startMs = int64(1_700_000_000_000)

// flakyRepo 在 memory 仓储外包一层，可让 Save 失败。
type flakyRepo struct {
	*memory.VillageRepo
	failSave atomic.Bool
}

func (r *flakyRepo) Save(ctx context.Context, v *domain.Village, expectedVersion int64) error {
	if r.failSave.Load() {
		return errors.New("connection reset")
	}
	return r.VillageRepo.Save(ctx, v, expectedVersion)
}

type recordNotifier struct {
	completed chan []domain.Position
}

func (n *recordNotifier) ConstructionComplete(owner domain.OwnerID, view app.VillageView, positions []domain.Position) {
	select {
	case n.completed <- positions:
	default:
	}
}

func (n *recordNotifier) ResourcesUpdated(domain.OwnerID, app.VillageView) {}

func newTestRuntime(t *testing.T, opts actors.Options, notifier actors.Notifier) (*Runtime, *flakyRepo, *atomic.Int64) {
	t.Helper()
	cat, err := building.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	repo := &flakyRepo{VillageRepo: memory.NewVillageRepo()}
	now := &atomic.Int64{}
	now.Store(startMs)
	var ids atomic.Int64
	svc := app.NewVillageService(repo, cat, now.Load, func() int64 { return ids.Add(1) }, logx.Nop(), 1)

	rt := NewRuntime(svc, notifier, opts, 2*time.Second)
	t.Cleanup(rt.Shutdown)
	return rt, repo, now
}

func TestRuntime_建村建造与读取(t *testing.T) {
	rt, _, _ := newTestRuntime(t, actors.Options{}, nil)
	ctx := context.Background()

	if _, err := rt.Load(ctx, 5); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("未建村时应返回 NotFound, got=%v", err)
	}

	view, err := rt.CreateVillage(ctx, 5, "Lugdunum", "roman")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Resources.Wood != 200 || view.SpeedUpPoints != 1 {
		t.Fatalf("初始视图不对: %+v", view)
	}

	view, err = rt.Build(ctx, 5, 0, "farm")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(view.Buildings) != 1 || view.Buildings[0].Active {
		t.Fatalf("应有 1 栋建造中的建筑: %+v", view.Buildings)
	}

	loaded, err := rt.Load(ctx, 5)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Buildings) != 1 || loaded.Resources.Wood != 160 {
		t.Fatalf("读取结果不对: %+v", loaded)
	}
}

func TestRuntime_写库失败缓存不变(t *testing.T) {
	rt, repo, _ := newTestRuntime(t, actors.Options{}, nil)
	ctx := context.Background()

	if _, err := rt.CreateVillage(ctx, 9, "Alesia", "gaulois"); err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.failSave.Store(true)
	_, err := rt.Build(ctx, 9, 1, "woodcutter")
	if !errors.Is(err, app.ErrPersistence) {
		t.Fatalf("期望存储错误, got=%v", err)
	}
	repo.failSave.Store(false)

	view, err := rt.Load(ctx, 9)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(view.Buildings) != 0 || view.Resources.Wood != 200 {
		t.Fatalf("失败后缓存被修改: %+v", view)
	}

	// 缓存版本与存储一致，后续写入正常
	if _, err = rt.Build(ctx, 9, 1, "woodcutter"); err != nil {
		t.Fatalf("恢复后写入失败: %v", err)
	}
}

func TestRuntime_存档被外部改写后重新加载(t *testing.T) {
	rt, repo, _ := newTestRuntime(t, actors.Options{}, nil)
	ctx := context.Background()

	if _, err := rt.CreateVillage(ctx, 11, "Gergovia", "gaulois"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// 绕过 actor 直接改档，缓存里的版本落后
	stored, err := repo.FindByOwner(ctx, 11)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	stored.Version++
	stored.Resources.Wood = 500
	if err = repo.VillageRepo.Save(ctx, stored, stored.Version-1); err != nil {
		t.Fatalf("bump version: %v", err)
	}

	_, err = rt.Build(ctx, 11, 0, "farm")
	if app.GetErrorReasonCode(err) != app.ReasonVersionConflict.Code {
		t.Fatalf("期望 VILLAGE_VERSION_CONFLICT, got=%v", err)
	}

	view, err := rt.Build(ctx, 11, 0, "farm")
	if err != nil {
		t.Fatalf("冲突后应重新加载并写入成功: %v", err)
	}
	if view.Resources.Wood != 460 || len(view.Buildings) != 1 {
		t.Fatalf("应基于外部改写后的存档结算: %+v", view)
	}
	if _, err = rt.Build(ctx, 11, 1, "woodcutter"); err != nil {
		t.Fatalf("后续写入失败: %v", err)
	}
}

func TestRuntime_校验失败返回业务错误(t *testing.T) {
	rt, _, _ := newTestRuntime(t, actors.Options{}, nil)
	ctx := context.Background()
	if _, err := rt.CreateVillage(ctx, 3, "Roma", "roman"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := rt.Build(ctx, 3, 2, "farm"); err != nil {
		t.Fatalf("build: %v", err)
	}
	_, err := rt.Build(ctx, 3, 2, "quarry")
	if app.GetErrorReasonCode(err) != app.ReasonPositionOccupied.Code {
		t.Fatalf("期望 POSITION_OCCUPIED, got=%v", err)
	}
	if _, err = rt.Load(ctx, -1); !errors.Is(err, app.ErrReqParamERR) {
		t.Fatalf("非法 owner 应返回参数错误, got=%v", err)
	}
}

func TestRuntime_建造轮询完成后推送(t *testing.T) {
	n := &recordNotifier{completed: make(chan []domain.Position, 1)}
	rt, _, now := newTestRuntime(t, actors.Options{ConstructionPoll: 10 * time.Millisecond}, n)
	ctx := context.Background()

	if _, err := rt.CreateVillage(ctx, 4, "Nemausus", "teuton"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := rt.Build(ctx, 4, 7, "farm"); err != nil {
		t.Fatalf("build: %v", err)
	}
	now.Add(240_000)

	select {
	case got := <-n.completed:
		if len(got) != 1 || got[0] != 7 {
			t.Fatalf("完成位置不对: %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("等待建造完成推送超时")
	}

	view, err := rt.Load(ctx, 4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !view.Buildings[0].Active {
		t.Fatalf("农场应为 Active")
	}
}

func TestCodeFromError(t *testing.T) {
	if CodeFromError(nil) != transport.OK {
		t.Fatalf("nil 应为 OK")
	}
	err := &RuntimeError{Code: transport.Timeout, Message: "x"}
	if CodeFromError(err) != transport.Timeout {
		t.Fatalf("应取 RuntimeError 的 code")
	}
	if CodeFromError(errors.New("x")) != transport.SystemError {
		t.Fatalf("未知错误应为 SystemError")
	}
}
