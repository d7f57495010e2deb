package filename

import (
	"strings"

	"github.com/easayliu/normname/internal/domain/services/group"
	strutil "github.com/easayliu/normname/pkg/utils/string"
)

// Result 一次文件名构建的各阶段明细
type Result struct {
	Stem    string `json:"stem"`
	Model   string `json:"model,omitempty"`   // 清洗后的提取型号
	Numeral string `json:"numeral,omitempty"` // 原始点位序号文本
	Number  int    `json:"number,omitempty"`
	GroupID string `json:"group_id,omitempty"`
	Alias   string `json:"alias,omitempty"`    // 命中的别名
	NewStem string `json:"new_stem,omitempty"` // 最终文件名（不含扩展名）
	Err     error  `json:"-"`
}

// Matched 是否成功生成新文件名
func (r Result) Matched() bool {
	return r.Err == nil && r.NewStem != ""
}

// Builder 基于分组索引生成规范文件名，只读，可并发使用
type Builder struct {
	index *group.Index
}

// NewBuilder 创建文件名构建器
func NewBuilder(index *group.Index) *Builder {
	return &Builder{index: index}
}

// Index 返回构建器使用的分组索引
func (b *Builder) Index() *group.Index {
	return b.index
}

// Build 由无扩展名的原始文件名生成新文件名：
// 命中组别为 "组别_规范型号_第N个点"，否则为 "型号_第N个点"，N 为中文数字
func (b *Builder) Build(stem string) (string, error) {
	r := b.Explain(stem)
	if r.Err != nil {
		return "", r.Err
	}
	return r.NewStem, nil
}

// Explain 与 Build 相同，但返回每个阶段的中间结果
func (b *Builder) Explain(stem string) Result {
	result := Result{Stem: stem}

	parsed, err := Extract(stem)
	if err != nil {
		result.Err = err
		return result
	}
	result.Numeral = strings.TrimSpace(parsed.Numeral)

	model := strutil.SanitizeComponent(parsed.Model)
	if model == "" {
		result.Err = ErrEmptyModel
		return result
	}
	result.Model = model

	n, ok := strutil.ChineseToNumber(result.Numeral)
	if !ok {
		result.Err = ErrInvalidNumeral
		return result
	}
	result.Number = n

	finalModel := model
	if b.index != nil {
		if m, found := b.index.Resolve(model); found {
			result.GroupID = m.GroupID
			result.Alias = m.Alias
			if m.Canonical != "" {
				finalModel = m.Canonical
			}
		}
	}

	var sb strings.Builder
	if result.GroupID != "" {
		sb.WriteString(result.GroupID)
		sb.WriteString(GroupSeparator)
	}
	sb.WriteString(finalModel)
	sb.WriteString(GroupSeparator)
	sb.WriteString(PointPrefix)
	sb.WriteString(strutil.NumberToChinese(n))
	sb.WriteString(PointSuffix)

	result.NewStem = sb.String()
	return result
}
