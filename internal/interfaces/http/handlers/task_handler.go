package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/easayliu/normname/internal/shared/errors"
	"github.com/easayliu/normname/pkg/utils"
)

// ListTasks 列出定时任务及运行统计
func ListTasks(c *gin.Context) {
	scheduler := GetContainer(c).GetSchedulerService()
	tasks, err := scheduler.GetAllTasks()
	if err != nil {
		abortWithError(c, err)
		return
	}
	utils.Success(c, gin.H{
		"running": scheduler.IsRunning(),
		"tasks":   tasks,
	})
}

// RunTask 立即执行定时任务（按ID或名称）
func RunTask(c *gin.Context) {
	scheduler := GetContainer(c).GetSchedulerService()
	id := c.Param("id")

	if _, err := scheduler.GetTask(id); err != nil {
		abortWithError(c, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeNotFound, "task not found", err))
		return
	}

	summary, err := scheduler.RunTaskNow(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	utils.Success(c, summary)
}
