package grpc

import (
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/modules/kit/logx"
	"VillageEmpire/modules/kit/tracex"
	"context"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// metadata key 必须小写
const (
	traceIDHeader = "x-trace-id"
	spanIDHeader  = "x-span-id"
)

// outgoing 把 ctx 上的 trace/span 写入 metadata。
func outgoing(ctx context.Context) context.Context {
	var kv []string
	if id, ok := tracex.TraceIDFrom(ctx); ok {
		kv = append(kv, traceIDHeader, id)
	}
	if id, ok := tracex.SpanIDFrom(ctx); ok {
		kv = append(kv, spanIDHeader, id)
	}
	if len(kv) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

// incoming 从 metadata 恢复 trace/span。
func incoming(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}
	if v := first(md, traceIDHeader); v != "" {
		ctx = tracex.WithTraceID(ctx, v)
	}
	if v := first(md, spanIDHeader); v != "" {
		ctx = tracex.WithSpanID(ctx, v)
	}
	return ctx
}

func first(md metadata.MD, key string) string {
	if vs := md.Get(key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func clientTrace() gogrpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *gogrpc.ClientConn, invoker gogrpc.UnaryInvoker, opts ...gogrpc.CallOption) error {
		return invoker(outgoing(ctx), method, req, reply, cc, opts...)
	}
}

// serverAccess 恢复 trace 并按 grpc 状态码记一条 access 日志。
func serverAccess(log logx.Logger) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		ctx = transport.NewContextWithParent(incoming(ctx), "GRPC "+info.FullMethod)
		resp, err := handler(ctx, req)
		transport.SetBizCode(ctx, bizCodeOf(status.Code(err)))
		if err != nil {
			transport.SetErrorReason(ctx, status.Code(err).String())
		}
		transport.WriteAccessLog(ctx, log)
		return resp, err
	}
}

// serverStreamTrace 流式调用只恢复 trace，不记 access。
func serverStreamTrace() gogrpc.StreamServerInterceptor {
	return func(srv any, ss gogrpc.ServerStream, _ *gogrpc.StreamServerInfo, handler gogrpc.StreamHandler) error {
		return handler(srv, &tracedStream{ServerStream: ss, ctx: incoming(ss.Context())})
	}
}

type tracedStream struct {
	gogrpc.ServerStream
	ctx context.Context
}

func (s *tracedStream) Context() context.Context { return s.ctx }

func bizCodeOf(c codes.Code) transport.BizCode {
	switch c {
	case codes.OK:
		return transport.OK
	case codes.InvalidArgument:
		return transport.InvalidParam
	case codes.Unauthenticated:
		return transport.Unauthorized
	case codes.NotFound:
		return transport.NotFound
	case codes.FailedPrecondition:
		return transport.Rejected
	case codes.Unavailable:
		return transport.Unavailable
	case codes.DeadlineExceeded:
		return transport.Timeout
	default:
		return transport.SystemError
	}
}
