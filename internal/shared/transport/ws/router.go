package ws

import (
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/modules/kit/logx"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Registrar 业务模块向 ws 路由注册处理器。
type Registrar interface {
	WsRegister(r *Router)
}

// Router 按 "组.动作" 分发，例如 village.build。
type Router struct {
	handlers map[string]HandlerFunc
	log      logx.Logger
}

// Group 同一前缀下的一组路由。
type Group struct {
	prefix string
	router *Router
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.Nop()
	}
	return &Router{
		handlers: make(map[string]HandlerFunc),
		log:      l,
	}
}

func (r *Router) Group(prefix string) *Group {
	return &Group{prefix: prefix, router: r}
}

// Handle 重复注册同一路由视为启动期编程错误。
func (g *Group) Handle(name string, h HandlerFunc) {
	route := g.prefix + "." + name
	if _, dup := g.router.handlers[route]; dup {
		panic("ws route registered twice: " + route)
	}
	g.router.handlers[route] = h
}

type uidKey struct{}

// UIDFrom 读取连接上已认证的用户 id。
func UIDFrom(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(uidKey{}).(int64)
	return uid, ok && uid > 0
}

// Dispatch 调用路由对应的 handler，并写一条 access 日志。
// resp 预置为系统错误，handler 漏设时不会出现成功假象。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		return
	}
	ctx := transport.NewContext("WS " + req.Body.Name)
	if req.Conn != nil {
		if uid, ok := req.Conn.GetProperty(ConnKeyUID).(int64); ok {
			ctx = context.WithValue(ctx, uidKey{}, uid)
		}
	}
	resp.Body.Code = transport.SystemError
	resp.Body.Msg = nil
	defer func() {
		transport.SetBizCode(ctx, transport.BizCode(resp.Body.Code))
		transport.WriteAccessLog(ctx, r.log)
	}()

	h, ok := r.handlers[req.Body.Name]
	if !ok {
		resp.Body.Code = transport.InvalidParam
		if !validRoute(req.Body.Name) {
			resp.Body.Msg = "路由参数有误"
		} else {
			resp.Body.Msg = "路由不存在"
		}
		return
	}
	r.invoke(ctx, h, req, resp)
}

// invoke 单个 handler panic 只影响本次请求，连接继续可用。
func (r *Router) invoke(ctx context.Context, h HandlerFunc, req *WsMsgReq, resp *WsMsgResp) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithContext(ctx).Error("ws handler panic",
				zap.String("route", req.Body.Name),
				zap.String("panic", fmt.Sprint(p)))
			resp.Body.Code = transport.SystemError
			resp.Body.Msg = "系统繁忙，请稍后重试"
		}
	}()
	h(ctx, req, resp)
}

func validRoute(name string) bool {
	prefix, action, ok := strings.Cut(name, ".")
	return ok && prefix != "" && action != "" && !strings.Contains(action, ".")
}
