package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/internal/application/container"
	"github.com/easayliu/normname/internal/interfaces/http/middleware"
	apperrors "github.com/easayliu/normname/internal/shared/errors"
)

// GetContainer 从gin.Context中获取ServiceContainer
// 这个方法假设Container已经通过中间件注入到Context中
func GetContainer(c *gin.Context) *container.ServiceContainer {
	v, exists := c.Get(middleware.ContainerKey)
	if !exists {
		panic("ServiceContainer not found in context. Did you forget to use ContainerMiddleware?")
	}
	return v.(*container.ServiceContainer)
}

// abortWithError 记录错误交给 ErrorHandlerMiddleware 输出
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindJSON 解析请求体，失败时返回 INVALID_REQUEST
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidRequest, "invalid request body", err))
		return false
	}
	return true
}
