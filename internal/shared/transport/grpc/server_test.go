package grpc

import (
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/modules/kit/logx"
	"VillageEmpire/modules/kit/tracex"
	"context"
	"net"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

func TestServer_健康检查随状态切换(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := NewServer(lis.Addr().String(), logx.Nop())
	go func() { _ = s.Serve(lis) }()
	defer s.Stop()

	conn, err := Dial(lis.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s.SetServing("village", true)
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: "village"})
	if err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("Check=%v err=%v, want SERVING", resp, err)
	}

	s.SetServing("village", false)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "village"})
	if err != nil || resp.Status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("Check=%v err=%v, want NOT_SERVING", resp, err)
	}
}

func TestServerAccess_提取TraceID(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(traceIDHeader, "t-1"))
	var got string
	_, _ = serverAccess(logx.Nop())(ctx, nil, &gogrpc.UnaryServerInfo{FullMethod: "/x.Y/Z"}, func(ctx context.Context, _ any) (any, error) {
		got, _ = tracex.TraceIDFrom(ctx)
		return nil, nil
	})
	if got != "t-1" {
		t.Fatalf("trace id=%q, want t-1", got)
	}
}

func TestOutgoing_写入metadata(t *testing.T) {
	ctx := tracex.WithSpanID(tracex.WithTraceID(context.Background(), "t-2"), "s-2")
	md, _ := metadata.FromOutgoingContext(outgoing(ctx))
	if first(md, traceIDHeader) != "t-2" || first(md, spanIDHeader) != "s-2" {
		t.Fatalf("md=%v", md)
	}
	if _, ok := metadata.FromOutgoingContext(outgoing(context.Background())); ok {
		t.Fatalf("无 trace 时不应写 metadata")
	}
}

func TestBizCodeOf_状态码映射(t *testing.T) {
	if bizCodeOf(codes.OK) != transport.OK || bizCodeOf(codes.Unavailable) != transport.Unavailable || bizCodeOf(codes.Internal) != transport.SystemError {
		t.Fatalf("映射不符")
	}
}
