package actor

import (
	"VillageEmpire/internal/shared/actor/messages"
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/internal/village/actors"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/engine"
	"VillageEmpire/modules/kit/tracex"
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 村庄 actor 系统的对外入口，把同步调用转换为 actor 请求。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(svc *app.VillageService, notifier actors.Notifier, opts actors.Options, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	// manager 只做路由，村庄的读写都在各自的子 actor 里
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(svc, notifier, opts)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		// 等 manager 及其子 actor 全部停止，轮询协程随之退出
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空"}
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		code := transport.SystemError
		if errors.Is(err, protoactor.ErrTimeout) {
			code = transport.Timeout
		}
		return nil, &RuntimeError{
			Code:    code,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func (r *Runtime) ask(ctx context.Context, msg messages.VillageMessage) (*actors.Reply, error) {
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return nil, err
	}
	reply, ok := res.(*actors.Reply)
	if !ok || reply == nil {
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 返回类型非法",
		}
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return reply, nil
}

func (r *Runtime) view(ctx context.Context, msg messages.VillageMessage) (*app.VillageView, error) {
	reply, err := r.ask(ctx, msg)
	if err != nil {
		return nil, err
	}
	if reply.View == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor 返回空视图"}
	}
	return reply.View, nil
}

func base(ctx context.Context, owner int64) messages.VillageBaseMessage {
	m := messages.VillageBaseMessage{OwnerId: owner}
	if tid, ok := tracex.TraceIDFrom(ctx); ok {
		m.TraceId = tid
	}
	return m
}

func (r *Runtime) CreateVillage(ctx context.Context, owner int64, name, archetype string) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVCreateVillage{VillageBaseMessage: base(ctx, owner), Name: name, Archetype: archetype})
}

func (r *Runtime) Load(ctx context.Context, owner int64) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVLoadVillage{VillageBaseMessage: base(ctx, owner)})
}

func (r *Runtime) Build(ctx context.Context, owner int64, position int, buildingID string) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVBuild{VillageBaseMessage: base(ctx, owner), Position: position, BuildingID: buildingID})
}

func (r *Runtime) Complete(ctx context.Context, owner int64, position int) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVComplete{VillageBaseMessage: base(ctx, owner), Position: position})
}

func (r *Runtime) SpeedUpWithResources(ctx context.Context, owner int64, position int) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVSpeedUpResources{VillageBaseMessage: base(ctx, owner), Position: position})
}

func (r *Runtime) SpeedUpWithPoint(ctx context.Context, owner int64, position int) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVSpeedUpPoint{VillageBaseMessage: base(ctx, owner), Position: position})
}

func (r *Runtime) Destroy(ctx context.Context, owner int64, position int) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVDestroy{VillageBaseMessage: base(ctx, owner), Position: position})
}

func (r *Runtime) Upgrade(ctx context.Context, owner int64, position int) (*app.VillageView, error) {
	return r.view(ctx, &messages.HVUpgrade{VillageBaseMessage: base(ctx, owner), Position: position})
}

func (r *Runtime) Stats(ctx context.Context, owner int64) (*engine.Stats, error) {
	reply, err := r.ask(ctx, &messages.HVStats{VillageBaseMessage: base(ctx, owner)})
	if err != nil {
		return nil, err
	}
	if reply.Stats == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor 返回空统计"}
	}
	return reply.Stats, nil
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
