package ws

import (
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/modules/kit/logx"
	"context"
	"testing"
)

type propConn struct {
	WSConn
	props map[string]any
}

func (c *propConn) GetProperty(key string) any { return c.props[key] }

func newResp() *WsMsgResp { return &WsMsgResp{Body: &RespBody{}} }

func TestDispatch_路由命中并拿到连接上的uid(t *testing.T) {
	r := NewRouter(logx.Nop())
	var gotUID int64
	r.Group("village").Handle("load", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		gotUID, _ = UIDFrom(ctx)
		resp.Body.Code = transport.OK
	})

	conn := &propConn{props: map[string]any{ConnKeyUID: int64(9)}}
	resp := newResp()
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "village.load"}, Conn: conn}, resp)
	if resp.Body.Code != transport.OK || gotUID != 9 {
		t.Fatalf("code=%d uid=%d", resp.Body.Code, gotUID)
	}
}

func TestDispatch_未知路由与非法路由(t *testing.T) {
	r := NewRouter(logx.Nop())
	for _, name := range []string{"village.nope", "village", "a.b.c", ".x"} {
		resp := newResp()
		r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: name}}, resp)
		if resp.Body.Code != transport.InvalidParam {
			t.Fatalf("%q: code=%d, want %d", name, resp.Body.Code, transport.InvalidParam)
		}
	}
}

func TestDispatch_handler漏设业务码视为系统错误且panic被拦截(t *testing.T) {
	r := NewRouter(logx.Nop())
	g := r.Group("village")
	g.Handle("silent", func(context.Context, *WsMsgReq, *WsMsgResp) {})
	g.Handle("boom", func(context.Context, *WsMsgReq, *WsMsgResp) { panic("x") })

	for _, name := range []string{"village.silent", "village.boom"} {
		resp := newResp()
		r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: name}}, resp)
		if resp.Body.Code != transport.SystemError {
			t.Fatalf("%s: code=%d, want %d", name, resp.Body.Code, transport.SystemError)
		}
	}
}

func TestBind_数字转整型指针(t *testing.T) {
	var dst struct {
		Position   *int   `json:"position"`
		BuildingID string `json:"buildingId"`
	}
	req := &WsMsgReq{Body: &ReqBody{Msg: map[string]any{"position": float64(0), "buildingId": "farm"}}}
	if err := Bind(req, &dst); err != nil {
		t.Fatalf("Bind err=%v", err)
	}
	if dst.Position == nil || *dst.Position != 0 || dst.BuildingID != "farm" {
		t.Fatalf("dst=%+v", dst)
	}
	if err := Bind(&WsMsgReq{Body: &ReqBody{}}, &dst); err != ErrEmptyMsg {
		t.Fatalf("空 msg 应返回 ErrEmptyMsg, got=%v", err)
	}
}
