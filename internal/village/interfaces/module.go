package interfaces

import (
	transporthttp "VillageEmpire/internal/shared/transport/http"
	"VillageEmpire/internal/shared/transport/ws"
	"VillageEmpire/internal/village/interfaces/handler"
	"VillageEmpire/internal/village/interfaces/handler/http"
	ws2 "VillageEmpire/internal/village/interfaces/handler/ws"

	"github.com/gin-gonic/gin"
)

type Module struct {
	wsHandler   *ws2.WsHandler
	httpHandler *http.HttpHandler
}

func New(v *handler.Village) *Module {
	return &Module{
		wsHandler:   ws2.NewWsHandler(v),
		httpHandler: http.NewHttpHandler(v),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
