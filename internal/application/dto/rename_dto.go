package dto

import (
	"github.com/easayliu/normname/internal/domain/models/rename"
	"github.com/easayliu/normname/internal/domain/services/filename"
	"github.com/easayliu/normname/internal/domain/services/group"
)

// ResolveRequest 文件名解析请求
type ResolveRequest struct {
	Stems []string `json:"stems" binding:"required,min=1"`
}

// ResolveItem 单个文件名的解析结果
type ResolveItem struct {
	filename.Result
	Matched bool   `json:"matched"`
	Error   string `json:"error,omitempty"`
}

// NewResolveItem 由构建结果转换
func NewResolveItem(r filename.Result) ResolveItem {
	item := ResolveItem{Result: r, Matched: r.Matched()}
	if r.Err != nil {
		item.Error = r.Err.Error()
	}
	return item
}

// RenameRequest 预览或执行请求
type RenameRequest struct {
	Path      string `json:"path" binding:"required"`
	Recursive bool   `json:"recursive"`
}

// PreviewResponse 预览结果
type PreviewResponse struct {
	RunID     string        `json:"run_id"`
	Root      string        `json:"root"`
	Recursive bool          `json:"recursive"`
	Count     int           `json:"count"`
	Plans     []rename.Plan `json:"plans"`
}

// GroupView 分组表中的一组
type GroupView struct {
	ID        string   `json:"id"`
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases"`
}

// GroupsResponse 当前生效的分组表
type GroupsResponse struct {
	Groups     []GroupView       `json:"groups"`
	Collisions []group.Collision `json:"collisions"`
}

// NewGroupsResponse 由索引生成分组视图
func NewGroupsResponse(idx *group.Index) GroupsResponse {
	table := idx.Table()
	resp := GroupsResponse{
		Groups:     make([]GroupView, 0, len(table)),
		Collisions: idx.Collisions(),
	}
	if resp.Collisions == nil {
		resp.Collisions = []group.Collision{}
	}
	for _, g := range table {
		canonical, _ := idx.Canonical(g.ID)
		resp.Groups = append(resp.Groups, GroupView{
			ID:        g.ID,
			Canonical: canonical,
			Aliases:   append([]string(nil), g.Aliases...),
		})
	}
	return resp
}
