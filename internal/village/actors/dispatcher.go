package actors

import (
	"VillageEmpire/internal/shared/actor/messages"
	"VillageEmpire/internal/village/app"
	"reflect"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, VH.HandleCreate)
	register(d, VH.HandleLoad)
	register(d, VH.HandleBuild)
	register(d, VH.HandleComplete)
	register(d, VH.HandleSpeedUpResources)
	register(d, VH.HandleSpeedUpPoint)
	register(d, VH.HandleDestroy)
	register(d, VH.HandleUpgrade)
	register(d, VH.HandleStats)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *VillageActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *VillageActor, req messages.VillageMessage) {
	if req == nil {
		ctx.Respond(fail(app.ErrReqParamERR.WithMsg("nil request")))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail(app.ErrReqParamERR.WithMsg("no handler for request body")))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}

