package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"VillageEmpire/modules/kit/errx"
)

const (
	maxCauseDepth  = 16
	maxStackFrames = 24
)

// ErrorLog 接口层打印错误时需要的全部信息。
type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	// Origin 栈顶调用点，Stack 为完整栈（仅系统错误有）
	Origin string
	Stack  string
}

// BuildErrorLog 从错误链里取最外层的 errx.Error，非 errx 错误只保留文本与 cause 链。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{
		Error:      err.Error(),
		CauseChain: causeChain(err),
	}

	var e *errx.Error
	if !errors.As(err, &e) {
		return out
	}
	out.Code = e.CodeText()
	out.Msg = e.Msg()
	out.Reason = e.Reason()
	out.Data = e.Data()
	out.Origin, out.Stack = formatStack(e.Stack())
	return out
}

func causeChain(err error) []string {
	var out []string
	for cur := errors.Unwrap(err); cur != nil && len(out) < maxCauseDepth; cur = errors.Unwrap(cur) {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
	}
	return out
}

func formatStack(pcs []uintptr) (origin, stack string) {
	if len(pcs) == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, maxStackFrames)
	for len(lines) < maxStackFrames {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		lines = append(lines, f.Function+" "+f.File+":"+strconv.Itoa(f.Line))
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines, "\n")
}
