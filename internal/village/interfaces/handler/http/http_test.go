package http

import (
	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/shared/security"
	"VillageEmpire/internal/shared/session"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/engine"
	"VillageEmpire/internal/village/interfaces/handler"
	"VillageEmpire/modules/kit/logx"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// fakeVillages 记录调用参数，按 err 字段统一返回。
type fakeVillages struct {
	owner    int64
	position int
	building string
	err      error
}

func (f *fakeVillages) view() (*app.VillageView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &app.VillageView{ID: 1, OwnerID: f.owner, Name: "v"}, nil
}

func (f *fakeVillages) CreateVillage(_ context.Context, owner int64, _, _ string) (*app.VillageView, error) {
	f.owner = owner
	return f.view()
}

func (f *fakeVillages) Load(_ context.Context, owner int64) (*app.VillageView, error) {
	f.owner = owner
	return f.view()
}

func (f *fakeVillages) Build(_ context.Context, owner int64, position int, buildingID string) (*app.VillageView, error) {
	f.owner, f.position, f.building = owner, position, buildingID
	return f.view()
}

func (f *fakeVillages) position1(owner int64, position int) (*app.VillageView, error) {
	f.owner, f.position = owner, position
	return f.view()
}

func (f *fakeVillages) Complete(_ context.Context, owner int64, position int) (*app.VillageView, error) {
	return f.position1(owner, position)
}

func (f *fakeVillages) SpeedUpWithResources(_ context.Context, owner int64, position int) (*app.VillageView, error) {
	return f.position1(owner, position)
}

func (f *fakeVillages) SpeedUpWithPoint(_ context.Context, owner int64, position int) (*app.VillageView, error) {
	return f.position1(owner, position)
}

func (f *fakeVillages) Destroy(_ context.Context, owner int64, position int) (*app.VillageView, error) {
	return f.position1(owner, position)
}

func (f *fakeVillages) Upgrade(_ context.Context, owner int64, position int) (*app.VillageView, error) {
	return f.position1(owner, position)
}

func (f *fakeVillages) Stats(_ context.Context, owner int64) (*engine.Stats, error) {
	f.owner = owner
	if f.err != nil {
		return nil, f.err
	}
	return &engine.Stats{}, nil
}

type envelope struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T, f *fakeVillages) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	cat, err := building.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	e := gin.New()
	NewHttpHandler(handler.NewVillage(f, cat, session.NewSessMgr(), logx.Nop())).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func do(t *testing.T, e *gin.Engine, method, path string, body any, uid int64) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if uid > 0 {
		token, err := security.Award(uid)
		if err != nil {
			t.Fatalf("award: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func TestCreate_未登录返回401(t *testing.T) {
	e := newTestEngine(t, &fakeVillages{})
	status, env := do(t, e, nethttp.MethodPost, "/api/v1/villages", map[string]string{"name": "a", "archetype": "roman"}, 0)
	if status != nethttp.StatusUnauthorized || env.Code != 401 {
		t.Fatalf("status=%d code=%d, want 401", status, env.Code)
	}
}

func TestCreate_按token里的uid创建(t *testing.T) {
	f := &fakeVillages{}
	e := newTestEngine(t, f)
	status, env := do(t, e, nethttp.MethodPost, "/api/v1/villages", map[string]string{"name": "a", "archetype": "roman"}, 42)
	if status != nethttp.StatusOK || env.Code != 0 {
		t.Fatalf("status=%d env=%+v", status, env)
	}
	if f.owner != 42 {
		t.Fatalf("owner=%d, want 42", f.owner)
	}
}

func TestBuild_零号位置可用且校验失败返回原因码(t *testing.T) {
	f := &fakeVillages{err: app.ErrValidation.WithReason(app.ReasonPositionOccupied).WithMsg(app.ReasonPositionOccupied.Message)}
	e := newTestEngine(t, f)
	status, env := do(t, e, nethttp.MethodPost, "/api/v1/villages/me/buildings", map[string]any{"position": 0, "buildingId": "farm"}, 7)
	if status != nethttp.StatusUnprocessableEntity || env.Code != 422 {
		t.Fatalf("status=%d code=%d, want 422", status, env.Code)
	}
	if env.Reason != "POSITION_OCCUPIED" || env.Msg != app.ReasonPositionOccupied.Message {
		t.Fatalf("reason=%q msg=%q", env.Reason, env.Msg)
	}
	if f.position != 0 || f.building != "farm" {
		t.Fatalf("参数透传有误: pos=%d building=%q", f.position, f.building)
	}
}

func TestBuild_缺少位置返回400(t *testing.T) {
	e := newTestEngine(t, &fakeVillages{})
	status, env := do(t, e, nethttp.MethodPost, "/api/v1/villages/me/buildings", map[string]any{"buildingId": "farm"}, 7)
	if status != nethttp.StatusBadRequest || env.Code != 400 {
		t.Fatalf("status=%d code=%d, want 400", status, env.Code)
	}
}

func TestLoad_没有村庄返回404(t *testing.T) {
	e := newTestEngine(t, &fakeVillages{err: app.ErrNotFound})
	status, env := do(t, e, nethttp.MethodGet, "/api/v1/villages/me", nil, 7)
	if status != nethttp.StatusNotFound || env.Code != 404 {
		t.Fatalf("status=%d code=%d, want 404", status, env.Code)
	}
}

func TestSpeedUp_存储失败返回503且不暴露细节(t *testing.T) {
	f := &fakeVillages{err: app.ErrPersistence.WithReason(app.ReasonRepoWriteFail).WithCause(errors.New("mongo down"))}
	e := newTestEngine(t, f)
	status, env := do(t, e, nethttp.MethodPost, "/api/v1/villages/me/buildings/3/speedup/point", nil, 7)
	if status != nethttp.StatusServiceUnavailable || env.Code != 503 {
		t.Fatalf("status=%d code=%d, want 503", status, env.Code)
	}
	if env.Reason != "" || env.Msg == "" {
		t.Fatalf("系统错误不应带原因码: %+v", env)
	}
	if f.position != 3 {
		t.Fatalf("position=%d, want 3", f.position)
	}
}

func TestDestroy_非法位置参数返回400(t *testing.T) {
	e := newTestEngine(t, &fakeVillages{})
	status, _ := do(t, e, nethttp.MethodDelete, "/api/v1/villages/me/buildings/abc", nil, 7)
	if status != nethttp.StatusBadRequest {
		t.Fatalf("status=%d, want 400", status)
	}
}

func TestCatalog_返回全部建筑(t *testing.T) {
	e := newTestEngine(t, &fakeVillages{})
	status, env := do(t, e, nethttp.MethodGet, "/api/v1/catalog/buildings", nil, 0)
	if status != nethttp.StatusOK {
		t.Fatalf("status=%d", status)
	}
	var entries []building.Entry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("len=%d, want 6", len(entries))
	}
}

func TestDestroy_只带uid不带凭证无法拿到令牌也无法操作(t *testing.T) {
	f := &fakeVillages{}
	e := newTestEngine(t, f)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/auth/token", bytes.NewBufferString(`{"uid":4242}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("按 uid 签发的入口不应存在, status=%d body=%s", w.Code, w.Body.String())
	}

	status, env := do(t, e, nethttp.MethodDelete, "/api/v1/villages/me/buildings/0", nil, 0)
	if status != nethttp.StatusUnauthorized || env.Code != 401 {
		t.Fatalf("status=%d code=%d, want 401", status, env.Code)
	}

	req = httptest.NewRequest(nethttp.MethodDelete, "/api/v1/villages/me/buildings/0", nil)
	req.Header.Set("Authorization", "Bearer 4242")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("伪造凭证应 401, status=%d", w.Code)
	}
	if f.owner != 0 {
		t.Fatalf("未认证请求不应到达业务层, owner=%d", f.owner)
	}
}
