package transport

import (
	"VillageEmpire/modules/kit/tracex"
	"context"
	"testing"
)

func TestNewContextWithParent_沿用上游trace(t *testing.T) {
	parent := tracex.WithTraceID(context.Background(), "trace-1")
	ctx := NewContextWithParent(parent, "GET /x")
	if id, ok := tracex.TraceIDFrom(ctx); !ok || id != "trace-1" {
		t.Fatalf("trace=%q ok=%v", id, ok)
	}
	if e := entryFrom(ctx); e == nil || e.code != SystemError || e.action != "GET /x" {
		t.Fatalf("entry=%+v", e)
	}
}

func TestSetErrorReason_空值不覆盖(t *testing.T) {
	ctx := NewContext("")
	SetBizCode(ctx, Rejected)
	SetErrorReason(ctx, "INSUFFICIENT_RESOURCES")
	SetErrorReason(ctx, "")
	e := entryFrom(ctx)
	if e.action != "unknown" || e.code != Rejected || e.reason != "INSUFFICIENT_RESOURCES" {
		t.Fatalf("entry=%+v", e)
	}
}
