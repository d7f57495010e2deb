package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/internal/application/container"
)

// ContainerKey 服务容器在 gin.Context 中的键
const ContainerKey = "container"

// ContainerMiddleware 服务容器中间件
// 将ServiceContainer注入到gin.Context中,供handlers使用
func ContainerMiddleware(c *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(ContainerKey, c)
		ctx.Next()
	}
}
