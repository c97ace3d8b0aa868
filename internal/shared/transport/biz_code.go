package transport

import "net/http"

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端业务码，与 HTTP 状态码取值对齐，便于排障。
const (
	OK           = 0
	InvalidParam = 400
	Unauthorized = 401
	NotFound     = 404
	// Rejected 业务校验失败，具体原因见响应的 reason
	Rejected    = 422
	SystemError = 500
	Unavailable = 503
	Timeout     = 504
)

// HTTPStatus 业务码对应的 HTTP 状态码。
func HTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case InvalidParam:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Rejected:
		return http.StatusUnprocessableEntity
	case Unavailable:
		return http.StatusServiceUnavailable
	case Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
