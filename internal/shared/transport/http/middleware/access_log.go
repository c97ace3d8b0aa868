package middleware

import (
	"VillageEmpire/internal/shared/transport"
	"VillageEmpire/modules/kit/logx"
	"VillageEmpire/modules/kit/tracex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TraceHeader 请求/响应上透传的 trace id 头。
const TraceHeader = "X-Trace-Id"

// AccessLog 每个请求一条 access 日志，上游带了 trace 头就沿用。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(TraceHeader); id != "" {
			ctx = tracex.WithTraceID(ctx, id)
		}
		ctx = transport.NewContextWithParent(ctx, c.Request.Method+" "+routeOf(c))
		if id, ok := tracex.TraceIDFrom(ctx); ok {
			c.Header(TraceHeader, id)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		transport.SetBizCode(ctx, bizCodeOf(c.Writer.Status()))
		transport.WriteAccessLog(ctx, log)
	}
}

// bizCodeOf 业务码与 http 状态码同值，2xx 一律视为成功。
func bizCodeOf(status int) transport.BizCode {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return transport.OK
	}
	return transport.BizCode(status)
}

func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return c.Request.URL.Path
}
