package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/internal/application/dto"
	"github.com/easayliu/normname/pkg/utils"
)

// ListGroups 当前生效的分组表及别名冲突
func ListGroups(c *gin.Context) {
	utils.Success(c, dto.NewGroupsResponse(GetContainer(c).GetIndex()))
}

// ResolveNames 解析一组不含扩展名的文件名，返回每个阶段的结果
func ResolveNames(c *gin.Context) {
	var req dto.ResolveRequest
	if !bindJSON(c, &req) {
		return
	}

	builder := GetContainer(c).GetBuilder()
	items := make([]dto.ResolveItem, 0, len(req.Stems))
	for _, stem := range req.Stems {
		items = append(items, dto.NewResolveItem(builder.Explain(stem)))
	}
	utils.Success(c, gin.H{"results": items})
}
