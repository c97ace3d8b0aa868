package http

import (
	"VillageEmpire/internal/account/app"
	"VillageEmpire/internal/account/interfaces/handler"
	"VillageEmpire/internal/account/interfaces/handler/dto"
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/internal/shared/security"
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/internal/shared/transport/http/middleware"
	"VillageEmpire/modules/kit/logx"
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionKicker 登出时断开该用户的 ws 长连接。
type SessionKicker interface {
	UnbindUID(uid int64)
}

type HttpHandler struct {
	users *app.UserService
	sess  SessionKicker
	log   logx.Logger
}

func NewHttpHandler(users *app.UserService, sess SessionKicker, log logx.Logger) *HttpHandler {
	return &HttpHandler{users: users, sess: sess, log: log}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	auth := group.Group("/auth")
	auth.POST("/signup", h.SignUp)
	auth.POST("/signin", h.SignIn)
	auth.POST("/signout", middleware.Auth(), h.SignOut)
}

func (h *HttpHandler) SignUp(c *gin.Context) {
	h.sign(c, "signup", h.users.SignUp)
}

func (h *HttpHandler) SignIn(c *gin.Context) {
	h.sign(c, "signin", h.users.SignIn)
}

// SignOut 令牌无状态，登出只断开在线连接，客户端自行丢弃 token。
func (h *HttpHandler) SignOut(c *gin.Context) {
	uid, _ := middleware.UID(c)
	if h.sess != nil {
		h.sess.UnbindUID(uid)
	}
	metrics.ObserveOp("account.signout", "")
	c.JSON(nethttp.StatusOK, dto.Resp{Code: transport.OK})
}

type signFunc func(ctx context.Context, username, password string) (*app.Session, error)

func (h *HttpHandler) sign(c *gin.Context, op string, fn signFunc) {
	ctx := c.Request.Context()
	var req dto.SignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, dto.Resp{Code: transport.InvalidParam, Msg: "参数有误"})
		return
	}
	s, err := fn(ctx, req.Username, req.Password)
	if err != nil {
		code, msg, reason := handler.HandleError(ctx, h.log, "account."+op, err)
		c.JSON(transport.HTTPStatus(code), dto.Resp{Code: code, Msg: msg, Reason: reason})
		return
	}
	metrics.ObserveOp("account."+op, "")
	c.JSON(nethttp.StatusOK, dto.Resp{Code: transport.OK, Data: dto.SessionResp{
		Uid:      s.UID,
		Username: s.Username,
		Token:    s.Token,
		ExpireAt: time.Now().Add(security.TokenTTL).UnixMilli(),
	}})
}
