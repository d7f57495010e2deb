package group

import (
	"fmt"
	"strings"
	"unicode/utf8"

	strutil "github.com/easayliu/normname/pkg/utils/string"
)

// Match 型号匹配结果
type Match struct {
	GroupID   string `json:"group_id"`
	Alias     string `json:"alias"`     // 命中的别名（原始写法）
	Canonical string `json:"canonical"` // 该组的规范输出型号（已清洗）
	Exact     bool   `json:"exact"`     // 规范化后精确命中；false 表示包含/被包含的模糊命中
}

// Collision 两个不同组的别名规范化后冲突，后出现者覆盖先出现者
type Collision struct {
	Key           string `json:"key"`
	KeptGroup     string `json:"kept_group"`
	KeptAlias     string `json:"kept_alias"`
	ReplacedGroup string `json:"replaced_group"`
	ReplacedAlias string `json:"replaced_alias"`
}

func (c Collision) String() string {
	return fmt.Sprintf("alias key %q: %s(%s) overrides %s(%s)",
		c.Key, c.KeptGroup, c.KeptAlias, c.ReplacedGroup, c.ReplacedAlias)
}

type normalizedEntry struct {
	key     string
	length  int // 按字符计的 key 长度
	groupID string
	alias   string
}

// Index 由分组表派生的只读索引，构建后可被多个 goroutine 并发读取
type Index struct {
	table      Table
	exact      map[string]string // 别名（原始写法）-> 组别
	normalized []normalizedEntry // 按首次插入顺序排列
	position   map[string]int    // 规范化别名 -> normalized 下标
	canonical  map[string]string // 组别 -> 规范输出型号
	collisions []Collision
	foldWidth  bool
}

// Option 索引构建选项
type Option func(*Index)

// WithWidthFolding 规范化前先把全角字母数字折叠为半角，ＯＰＰＯ 与 OPPO 视为同一型号
func WithWidthFolding() Option {
	return func(idx *Index) {
		idx.foldWidth = true
	}
}

// NewIndex 构建别名索引
// 不同组的别名规范化后冲突时按表顺序"后者覆盖"，并记录到 Collisions()
func NewIndex(table Table, opts ...Option) (*Index, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	idx := &Index{
		table:     table.Clone(),
		exact:     make(map[string]string),
		position:  make(map[string]int),
		canonical: make(map[string]string, len(table)),
	}
	for _, opt := range opts {
		opt(idx)
	}

	for _, g := range idx.table {
		idx.canonical[g.ID] = strutil.SanitizeComponent(g.Aliases[0])

		for _, raw := range g.Aliases {
			alias := strings.TrimSpace(raw)
			if alias == "" {
				continue
			}
			idx.exact[alias] = g.ID
			idx.put(idx.normalize(alias), g.ID, alias)
		}
	}

	return idx, nil
}

// NewIndexStrict 与 NewIndex 相同，但跨组别名冲突视为配置错误
func NewIndexStrict(table Table, opts ...Option) (*Index, error) {
	idx, err := NewIndex(table, opts...)
	if err != nil {
		return nil, err
	}
	if len(idx.collisions) > 0 {
		return nil, fmt.Errorf("ambiguous group table: %s", idx.collisions[0])
	}
	return idx, nil
}

// MustDefaultIndex 使用内置分组表构建索引
func MustDefaultIndex() *Index {
	idx, err := NewIndex(DefaultTable())
	if err != nil {
		panic(err)
	}
	return idx
}

func (idx *Index) normalize(s string) string {
	if idx.foldWidth {
		s = strutil.FoldWidth(s)
	}
	return strutil.NormalizeModelKey(s)
}

func (idx *Index) put(key, groupID, alias string) {
	if pos, ok := idx.position[key]; ok {
		prev := idx.normalized[pos]
		if prev.groupID != groupID {
			idx.collisions = append(idx.collisions, Collision{
				Key:           key,
				KeptGroup:     groupID,
				KeptAlias:     alias,
				ReplacedGroup: prev.groupID,
				ReplacedAlias: prev.alias,
			})
		}
		idx.normalized[pos].groupID = groupID
		idx.normalized[pos].alias = alias
		return
	}
	idx.position[key] = len(idx.normalized)
	idx.normalized = append(idx.normalized, normalizedEntry{
		key:     key,
		length:  utf8.RuneCountInString(key),
		groupID: groupID,
		alias:   alias,
	})
}

// Resolve 根据型号文本查找组别：
//   - 先做规范化精确匹配
//   - 再做包含/被包含的模糊匹配（取最长别名命中，等长取先出现者）
func (idx *Index) Resolve(modelText string) (Match, bool) {
	key := idx.normalize(modelText)
	if key == "" {
		return Match{}, false
	}

	if pos, ok := idx.position[key]; ok {
		e := idx.normalized[pos]
		return idx.match(e, true), true
	}

	best := -1
	for i, e := range idx.normalized {
		if !strings.Contains(key, e.key) && !strings.Contains(e.key, key) {
			continue
		}
		if best < 0 || e.length > idx.normalized[best].length {
			best = i
		}
	}
	if best < 0 {
		return Match{}, false
	}
	return idx.match(idx.normalized[best], false), true
}

func (idx *Index) match(e normalizedEntry, exact bool) Match {
	return Match{
		GroupID:   e.groupID,
		Alias:     e.alias,
		Canonical: idx.canonical[e.groupID],
		Exact:     exact,
	}
}

// Lookup 按原始写法精确查找别名所属组别
func (idx *Index) Lookup(alias string) (string, bool) {
	id, ok := idx.exact[strings.TrimSpace(alias)]
	return id, ok
}

// Canonical 返回组别的规范输出型号
func (idx *Index) Canonical(groupID string) (string, bool) {
	c, ok := idx.canonical[groupID]
	return c, ok
}

// Table 返回分组表副本
func (idx *Index) Table() Table {
	return idx.table.Clone()
}

// Collisions 返回构建索引时发现的跨组别名冲突
func (idx *Index) Collisions() []Collision {
	return append([]Collision(nil), idx.collisions...)
}
