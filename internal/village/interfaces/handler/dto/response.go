package dto

// Resp 统一响应包 {code,msg,data}。
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	// Reason 校验失败时的原因码，例如 POSITION_OCCUPIED
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func Success(code int, data any) Resp {
	return Resp{Code: code, Data: data}
}

func Error(code int, msg string) Resp {
	return Resp{Code: code, Msg: msg}
}

func Reject(code int, msg, reason string) Resp {
	return Resp{Code: code, Msg: msg, Reason: reason}
}
