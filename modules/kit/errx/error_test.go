package errx

import (
	"errors"
	"fmt"
	"testing"
)

type reason string

func (r reason) ReasonCode() string { return string(r) }

func TestIs_同码即相等(t *testing.T) {
	a := NewBiz("VILLAGE_VALIDATION_FAILED", "a").WithReason(reason("INSUFFICIENT_RESOURCES"))
	b := NewBiz("VILLAGE_VALIDATION_FAILED", "b").WithCause(errors.New("x"))
	if !errors.Is(a, b) {
		t.Fatalf("期望同 code 判定相等, a=%v b=%v", a, b)
	}
	if errors.Is(a, NewBiz("OTHER", "a")) {
		t.Fatalf("不同 code 不应相等")
	}
}

func TestWithCause_业务错误无栈且cause可追溯(t *testing.T) {
	cause := errors.New("mongo down")
	err := NewBiz("VILLAGE_NOT_FOUND", "村庄不存在").WithCause(cause)
	if err.Stack() != nil {
		t.Fatalf("业务错误不应捕获栈")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause 丢失: %v", err)
	}
}

func TestWithCause_系统错误只在最内层捕获栈(t *testing.T) {
	inner := NewSys("VILLAGE_PERSISTENCE_FAILED", "存档失败").WithCause(errors.New("io timeout"))
	if len(inner.Stack()) == 0 {
		t.Fatalf("期望内层系统错误带栈")
	}
	outer := ErrUnavailable.WithCause(inner)
	if outer.Stack() != nil {
		t.Fatalf("外层不应重复捕获栈")
	}
}

func TestWith系列_不改动原对象(t *testing.T) {
	m := map[string]any{"village": int64(1)}
	base := NewSys("X", "原文案")
	next := base.WithDataMap(m).WithMsg("新文案").WithReason(reason("R"))
	m["village"] = int64(2)

	if base.Msg() != "原文案" || base.Reason() != "" || base.Data() != nil {
		t.Fatalf("原对象被修改: %+v", base)
	}
	if next.Data()["village"] != int64(1) || next.Reason() != "R" || next.Msg() != "新文案" {
		t.Fatalf("派生对象不符: data=%v reason=%q msg=%q", next.Data(), next.Reason(), next.Msg())
	}
}

func TestIsBiz_CodeOf_穿透包装(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewBiz("VILLAGE_X", "x"))
	if CodeOf(wrapped) != "VILLAGE_X" || !IsBiz(wrapped) {
		t.Fatalf("包装后识别失败: %v", wrapped)
	}
	if IsBiz(ErrUnavailable.WithCause(errors.New("down"))) {
		t.Fatalf("系统错误 IsBiz 应为 false")
	}
	if CodeOf(errors.New("plain")) != "" || IsBiz(nil) {
		t.Fatalf("普通错误应无 code")
	}
}

func TestError_文本格式(t *testing.T) {
	if got := NewBiz("A", "").Error(); got != "A" {
		t.Fatalf("got=%q", got)
	}
	if got := NewSys("A", "m").WithCause(errors.New("c")).Error(); got != "A: m: c" {
		t.Fatalf("got=%q", got)
	}
}
