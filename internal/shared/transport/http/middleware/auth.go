package middleware

import (
	"VillageEmpire/internal/shared/security"
	"VillageEmpire/internal/shared/transport"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxKeyUID = "uid"

// Auth 校验 Bearer token，成功后把 uid 写入 gin.Context。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "缺少登录凭证")
			return
		}
		claims, err := security.ParseToken(token)
		if err != nil || claims.Uid <= 0 {
			transport.SetErrorReason(c.Request.Context(), "TOKEN_INVALID")
			abortUnauthorized(c, "登录凭证无效")
			return
		}
		c.Set(ctxKeyUID, claims.Uid)
		c.Next()
	}
}

// UID 读取 Auth 写入的用户 id。
func UID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxKeyUID)
	if !ok {
		return 0, false
	}
	uid, ok := v.(int64)
	return uid, ok && uid > 0
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": transport.Unauthorized,
		"msg":  msg,
	})
}
