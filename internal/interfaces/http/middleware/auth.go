package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/easayliu/normname/internal/shared/errors"
	"github.com/easayliu/normname/pkg/utils"
)

// BearerAuth 校验 Authorization: Bearer <token>；token 返回空字符串时不校验
// token 每次请求读取，配置热加载后立即生效
func BearerAuth(token func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := token()
		if expected == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(expected)) != 1 {
			c.Header("WWW-Authenticate", `Bearer realm="normname"`)
			utils.ErrorWithStatus(c, http.StatusUnauthorized, string(apperrors.ErrorCodeUnauthorized), "missing or invalid bearer token", nil)
			return
		}
		c.Next()
	}
}
