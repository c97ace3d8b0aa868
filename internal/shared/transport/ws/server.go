package ws

import (
	"VillageEmpire/internal/shared/metrics"
	"VillageEmpire/modules/kit/logx"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxFrameSize 客户端单帧上限，压缩加密后的请求远小于此
const maxFrameSize = 64 << 10

// Server 把 http 升级为 websocket，每条连接一个 WsServer。
type Server struct {
	router   *Router
	upgrader websocket.Upgrader
	log      logx.Logger
}

func NewServer(r *Router, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		log:    l.With(zap.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// 跨域由网关控制，这里不校验 Origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade 已经回写了 http 错误
		s.log.Warn("ws upgrade fail", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	conn.SetReadLimit(maxFrameSize)

	c := NewWsServer(conn, s.log)
	c.Router(s.router)
	metrics.WsConnections.Inc()
	go func() {
		<-c.Done()
		metrics.WsConnections.Dec()
		s.log.Debug("ws conn closed", zap.String("addr", c.Addr()))
	}()

	// 密钥先到，客户端才能加密第一条请求
	c.handshake()
	c.Run()
	s.log.Info("ws conn open", zap.String("addr", c.Addr()))
}
