package errx

// 通用错误码，业务域自己的码（如 VILLAGE_NOT_FOUND）在各自包里定义。
const (
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeTimeout       Code = "TIMEOUT"
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
)

// 哨兵只读，需要上下文时用 With* 派生。
var (
	ErrInternal     = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout      = NewSys(CodeTimeout, "请求超时")
	ErrReqParamERR  = NewBiz(CodeReqParamError, "请求参数错误")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "未登录或登录已过期")
)
