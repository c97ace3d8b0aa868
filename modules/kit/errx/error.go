// Package errx 两类错误：biz 是可预期的业务拒绝，原样回给玩家；
// sys 是技术故障，对外只给兜底文案，日志里带 cause 链和栈。
package errx

import (
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
)

// Code 稳定的错误标识，errors.Is 只比较它。
type Code string

// Reason 细分原因码，写进 data["reason"]。
type Reason interface {
	ReasonCode() string
}

const reasonKey = "reason"

type Error struct {
	code  Code
	msg   string
	sys   bool
	data  map[string]any
	cause error
	// 只在 sys 错误首次挂 cause 时记录
	stack []uintptr
}

func NewBiz(code Code, msg string) *Error { return &Error{code: code, msg: msg} }

func NewSys(code Code, msg string) *Error { return &Error{code: code, msg: msg, sys: true} }

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := string(e.code)
	if e.msg != "" {
		s += ": " + e.msg
	}
	if e.cause != nil {
		s = fmt.Sprintf("%s: %v", s, e.cause)
	}
	return s
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 同 code 即同一语义，msg/data/cause 不参与比较。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) CodeText() string { return string(e.Code()) }

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Data 返回副本。
func (e *Error) Data() map[string]any {
	if e == nil {
		return nil
	}
	return maps.Clone(e.data)
}

func (e *Error) Reason() string {
	if e == nil {
		return ""
	}
	s, _ := e.data[reasonKey].(string)
	return s
}

func (e *Error) Stack() []uintptr {
	if e == nil {
		return nil
	}
	return slices.Clone(e.stack)
}

// 以下 With* 都返回新对象，包级哨兵可以放心派生。

func (e *Error) clone() *Error {
	c := *e
	c.data = maps.Clone(e.data)
	c.stack = slices.Clone(e.stack)
	return &c
}

func (e *Error) WithData(key string, value any) *Error {
	c := e.clone()
	if c.data == nil {
		c.data = map[string]any{}
	}
	c.data[key] = value
	return c
}

func (e *Error) WithDataMap(data map[string]any) *Error {
	c := e.clone()
	if len(data) > 0 {
		if c.data == nil {
			c.data = make(map[string]any, len(data))
		}
		maps.Copy(c.data, data)
	}
	return c
}

func (e *Error) WithReason(r Reason) *Error {
	code := ""
	if r != nil {
		code = r.ReasonCode()
	}
	return e.WithData(reasonKey, code)
}

func (e *Error) WithMsg(msg string) *Error {
	c := e.clone()
	c.msg = msg
	return c
}

// WithCause 挂原始错误。cause 链上已有栈时不再重复捕获。
func (e *Error) WithCause(cause error) *Error {
	c := e.clone()
	c.cause = cause
	if c.sys && cause != nil && c.stack == nil && !chainHasStack(cause) {
		c.stack = callers(3)
	}
	return c
}

// IsBiz 取链上最外层 *Error 判断。
func IsBiz(err error) bool {
	var e *Error
	return errors.As(err, &e) && e != nil && !e.sys
}

// CodeOf 非 *Error 返回空。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ""
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}
	return pcs[:n]
}

func chainHasStack(err error) bool {
	for depth := 0; err != nil && depth < 32; depth++ {
		if s, ok := err.(interface{ Stack() []uintptr }); ok && len(s.Stack()) > 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
