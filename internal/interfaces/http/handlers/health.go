package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/pkg/utils"
)

// HealthCheck 健康检查
func HealthCheck(c *gin.Context) {
	health := GetContainer(c).GetServiceHealth()
	health["status"] = "ok"
	utils.Success(c, health)
}
