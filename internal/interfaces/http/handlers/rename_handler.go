package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/internal/application/dto"
	"github.com/easayliu/normname/internal/infrastructure/filesystem"
	"github.com/easayliu/normname/pkg/utils"
)

// TriggerAPI HTTP 触发的批次来源
const TriggerAPI = "api"

// PreviewRename 生成重命名计划，不修改文件
func PreviewRename(c *gin.Context) {
	var req dto.RenameRequest
	if !bindJSON(c, &req) {
		return
	}

	root, err := filesystem.ExpandPath(req.Path)
	if err != nil {
		abortWithError(c, err)
		return
	}

	preview, err := GetContainer(c).GetRenameService().Preview(c.Request.Context(), root, req.Recursive)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.Success(c, dto.PreviewResponse{
		RunID:     preview.RunID,
		Root:      preview.Root,
		Recursive: preview.Recursive,
		Count:     len(preview.Plans),
		Plans:     preview.Plans,
	})
}

// ApplyRename 在目录锁内重新扫描并执行重命名
func ApplyRename(c *gin.Context) {
	var req dto.RenameRequest
	if !bindJSON(c, &req) {
		return
	}

	root, err := filesystem.ExpandPath(req.Path)
	if err != nil {
		abortWithError(c, err)
		return
	}

	summary, err := GetContainer(c).GetRenameService().Run(c.Request.Context(), TriggerAPI, root, req.Recursive)
	if err != nil {
		abortWithError(c, err)
		return
	}
	utils.Success(c, summary)
}
