package interfaces

import (
	"VillageEmpire/internal/account/app"
	"VillageEmpire/internal/account/interfaces/handler/http"
	transporthttp "VillageEmpire/internal/shared/transport/http"
	"VillageEmpire/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	httpHandler *http.HttpHandler
}

func New(users *app.UserService, sess http.SessionKicker, log logx.Logger) *Module {
	return &Module{httpHandler: http.NewHttpHandler(users, sess, log)}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ transporthttp.Registrar = (*Module)(nil)
