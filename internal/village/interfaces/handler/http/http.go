package http

import (
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/internal/shared/transport/http/middleware"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/interfaces/handler"
	"VillageEmpire/internal/village/interfaces/handler/dto"
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type HttpHandler struct {
	village *handler.Village
}

func NewHttpHandler(v *handler.Village) *HttpHandler {
	return &HttpHandler{village: v}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	catalog := group.Group("/catalog")
	catalog.GET("/buildings", h.Buildings)
	catalog.GET("/archetypes", h.Archetypes)

	villages := group.Group("/villages", middleware.Auth())
	villages.POST("", h.Create)
	villages.GET("/me", h.Load)
	villages.GET("/me/stats", h.Stats)
	villages.POST("/me/buildings", h.Build)
	villages.POST("/me/buildings/:pos/complete", h.positionOp("complete", h.village.Villages.Complete))
	villages.POST("/me/buildings/:pos/speedup/resources", h.positionOp("speedUpResources", h.village.Villages.SpeedUpWithResources))
	villages.POST("/me/buildings/:pos/speedup/point", h.positionOp("speedUpPoint", h.village.Villages.SpeedUpWithPoint))
	villages.POST("/me/buildings/:pos/upgrade", h.positionOp("upgrade", h.village.Villages.Upgrade))
	villages.DELETE("/me/buildings/:pos", h.positionOp("destroy", h.village.Villages.Destroy))
}

func (h *HttpHandler) Buildings(c *gin.Context) {
	h.ok(c, h.village.Catalog.All())
}

func (h *HttpHandler) Archetypes(c *gin.Context) {
	h.ok(c, h.village.Catalog.Archetypes())
}

func (h *HttpHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	uid, _ := middleware.UID(c)

	var req dto.CreateVillageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	view, err := h.village.Villages.CreateVillage(ctx, uid, req.Name, req.Archetype)
	h.respond(ctx, c, "create", view, err)
}

func (h *HttpHandler) Load(c *gin.Context) {
	ctx := c.Request.Context()
	uid, _ := middleware.UID(c)
	view, err := h.village.Villages.Load(ctx, uid)
	h.respond(ctx, c, "load", view, err)
}

func (h *HttpHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	uid, _ := middleware.UID(c)
	stats, err := h.village.Villages.Stats(ctx, uid)
	if err != nil {
		h.error(ctx, c, "stats", err)
		return
	}
	metrics.ObserveOp("stats", "")
	h.ok(c, stats)
}

func (h *HttpHandler) Build(c *gin.Context) {
	ctx := c.Request.Context()
	uid, _ := middleware.UID(c)

	var req dto.BuildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	view, err := h.village.Villages.Build(ctx, uid, *req.Position, req.BuildingID)
	h.respond(ctx, c, "build", view, err)
}

type positionFunc func(ctx context.Context, owner int64, position int) (*app.VillageView, error)

// positionOp 路径里带 :pos 的建筑操作共用同一套解析与响应。
func (h *HttpHandler) positionOp(op string, fn positionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		uid, _ := middleware.UID(c)
		pos, err := strconv.Atoi(c.Param("pos"))
		if err != nil {
			h.fail(c, transport.InvalidParam, "位置参数有误")
			return
		}
		view, err := fn(ctx, uid, pos)
		h.respond(ctx, c, op, view, err)
	}
}

func (h *HttpHandler) respond(ctx context.Context, c *gin.Context, op string, view *app.VillageView, err error) {
	if err != nil {
		h.error(ctx, c, op, err)
		return
	}
	metrics.ObserveOp(op, "")
	h.ok(c, view)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(transport.HTTPStatus(code), dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, op string, err error) {
	code, msg := handler.HandleError(ctx, h.village.Log, "village."+op, err)
	c.JSON(transport.HTTPStatus(code), dto.Reject(code, msg, handler.ClientReason(code, err)))
}
