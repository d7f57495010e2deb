package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/internal/application/container"
	"github.com/easayliu/normname/internal/interfaces/http/handlers"
	"github.com/easayliu/normname/internal/interfaces/http/middleware"
)

// SetupRoutes 创建路由
func SetupRoutes(c *container.ServiceContainer) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.ContainerMiddleware(c))
	router.Use(middleware.ErrorHandlerMiddleware())

	api := router.Group("/api/v1")
	{
		// 健康检查不需要认证
		api.GET("/health", handlers.HealthCheck)

		protected := api.Group("")
		protected.Use(middleware.BearerAuth(func() string { return c.GetConfig().Server.Token }))
		{
			protected.GET("/groups", handlers.ListGroups)
			protected.POST("/names/resolve", handlers.ResolveNames)

			rename := protected.Group("/rename")
			{
				rename.POST("/preview", handlers.PreviewRename)
				rename.POST("/apply", handlers.ApplyRename)
			}

			tasks := protected.Group("/tasks")
			{
				tasks.GET("", handlers.ListTasks)
				tasks.POST("/:id/run", handlers.RunTask)
			}
		}
	}

	return router
}
