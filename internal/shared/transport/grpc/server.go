package grpc

import (
	"VillageEmpire/modules/kit/logx"
	"fmt"
	"net"

	"go.uber.org/zap"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server 内部 grpc 端口，目前只挂健康检查，供编排探活。
type Server struct {
	addr   string
	srv    *gogrpc.Server
	health *health.Server
	log    logx.Logger
}

func NewServer(addr string, log logx.Logger) *Server {
	if log == nil {
		log = logx.Nop()
	}
	srv := gogrpc.NewServer(
		gogrpc.ChainUnaryInterceptor(serverAccess(log)),
		gogrpc.ChainStreamInterceptor(serverStreamTrace()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return &Server{addr: addr, srv: srv, health: hs, log: log}
}

// SetServing 标记某个服务的健康状态，service 为空表示整个进程。
func (s *Server) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, status)
}

// Start 阻塞监听，GracefulStop 后返回 nil。
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", s.addr, err)
	}
	s.log.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}

// Dial 建立带 trace 透传的内部连接。
func Dial(target string) (*gogrpc.ClientConn, error) {
	// 1.创建 ClientConn 2.按 target scheme 选 resolver 3.异步解析并交给 balancer
	conn, err := gogrpc.NewClient(target,
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithChainUnaryInterceptor(clientTrace()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return conn, nil
}
