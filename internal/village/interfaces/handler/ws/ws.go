package ws

import (
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/internal/shared/security"
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/internal/shared/transport/ws"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/interfaces/handler"
	"VillageEmpire/internal/village/interfaces/handler/dto"
	"context"
)

type WsHandler struct {
	village *handler.Village
}

func NewWsHandler(v *handler.Village) *WsHandler {
	return &WsHandler{village: v}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("village")
	g.Handle("auth", h.Auth)
	g.Handle("create", h.Create)
	g.Handle("load", h.Load)
	g.Handle("stats", h.Stats)
	g.Handle("build", h.Build)
	g.Handle("complete", h.positionOp("complete", h.village.Villages.Complete))
	g.Handle("speedUpResources", h.positionOp("speedUpResources", h.village.Villages.SpeedUpWithResources))
	g.Handle("speedUpPoint", h.positionOp("speedUpPoint", h.village.Villages.SpeedUpWithPoint))
	g.Handle("upgrade", h.positionOp("upgrade", h.village.Villages.Upgrade))
	g.Handle("destroy", h.positionOp("destroy", h.village.Villages.Destroy))
}

// Auth 连接级登录，token 校验通过后绑定 uid 与连接。
func (h *WsHandler) Auth(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq.Conn == nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req dto.WsAuthReq
	if err := ws.Bind(wsReq, &req); err != nil || req.Token == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	claims, err := security.ParseToken(req.Token)
	if err != nil || claims.Uid <= 0 {
		transport.SetErrorReason(ctx, "TOKEN_INVALID")
		h.fail(wsResp, transport.Unauthorized, "登录凭证无效")
		return
	}
	h.village.Session.Bind(claims.Uid, req.Token, wsReq.Conn)
	h.ok(wsResp, dto.WsAuthResp{Uid: claims.Uid})
}

func (h *WsHandler) Create(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req dto.WsCreateReq
	if err := ws.Bind(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	view, err := h.village.Villages.CreateVillage(ctx, uid, req.Name, req.Archetype)
	h.respond(ctx, wsResp, "create", view, err)
}

func (h *WsHandler) Load(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	view, err := h.village.Villages.Load(ctx, uid)
	h.respond(ctx, wsResp, "load", view, err)
}

func (h *WsHandler) Stats(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	stats, err := h.village.Villages.Stats(ctx, uid)
	if err != nil {
		h.error(ctx, wsResp, "stats", err)
		return
	}
	metrics.ObserveOp("stats", "")
	h.ok(wsResp, stats)
}

func (h *WsHandler) Build(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req dto.WsBuildReq
	if err := ws.Bind(wsReq, &req); err != nil || req.Position == nil || req.BuildingID == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	view, err := h.village.Villages.Build(ctx, uid, *req.Position, req.BuildingID)
	h.respond(ctx, wsResp, "build", view, err)
}

type positionFunc func(ctx context.Context, owner int64, position int) (*app.VillageView, error)

func (h *WsHandler) positionOp(op string, fn positionFunc) ws.HandlerFunc {
	return func(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
		uid, ok := h.uid(wsReq, wsResp)
		if !ok {
			return
		}
		var req dto.PositionReq
		if err := ws.Bind(wsReq, &req); err != nil || req.Position == nil {
			h.fail(wsResp, transport.InvalidParam, "参数有误")
			return
		}
		view, err := fn(ctx, uid, *req.Position)
		h.respond(ctx, wsResp, op, view, err)
	}
}

// uid 未认证的连接只能调用 village.auth
func (h *WsHandler) uid(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (int64, bool) {
	if wsReq.Conn == nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return 0, false
	}
	uid, ok := h.village.Session.GetUID(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.Unauthorized, "请先登录")
		return 0, false
	}
	return uid, true
}

func (h *WsHandler) respond(ctx context.Context, resp *ws.WsMsgResp, op string, view *app.VillageView, err error) {
	if err != nil {
		h.error(ctx, resp, op, err)
		return
	}
	metrics.ObserveOp(op, "")
	h.ok(resp, view)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, op string, err error) {
	code, msg := handler.HandleError(ctx, h.village.Log, "village."+op, err)
	if reason := handler.ClientReason(code, err); reason != "" {
		resp.Body.Code = code
		resp.Body.Msg = dto.Reject(code, msg, reason)
		return
	}
	h.fail(resp, code, msg)
}
