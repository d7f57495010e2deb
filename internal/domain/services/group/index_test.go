package group

import (
	"strings"
	"testing"
)

func TestIndex_Resolve(t *testing.T) {
	idx := MustDefaultIndex()

	tests := []struct {
		name      string
		model     string
		wantFound bool
		wantGroup string
		wantAlias string
		wantExact bool
	}{
		{name: "精确命中", model: "小米15", wantFound: true, wantGroup: "1-1", wantAlias: "小米15", wantExact: true},
		{name: "大小写与空白不敏感", model: "OPPO Find-X8 Pro", wantFound: true, wantGroup: "1-3", wantAlias: "oppofindx8pro", wantExact: true},
		{name: "全角字符默认不折叠", model: "ｉｐｈｏｎｅ１５", wantFound: false},
		{name: "全角数字不参与模糊匹配", model: "３", wantFound: false},
		{name: "包含别名取最长", model: "oppo find x8 pro max", wantFound: true, wantGroup: "1-3", wantAlias: "oppofindx8pro"},
		{name: "被别名包含取最长", model: "mate6", wantFound: true, wantGroup: "3-1", wantAlias: "huaweimate60"},
		{name: "带后缀的苹果", model: "iphone 15 pro", wantFound: true, wantGroup: "2-2", wantAlias: "iphone15"},
		{name: "未知机型", model: "未知机型", wantFound: false},
		{name: "空字符串", model: "", wantFound: false},
		{name: "仅连接符", model: " - _ ", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := idx.Resolve(tt.model)
			if ok != tt.wantFound {
				t.Fatalf("Resolve(%q) found = %v, want %v", tt.model, ok, tt.wantFound)
			}
			if !ok {
				return
			}
			if m.GroupID != tt.wantGroup {
				t.Errorf("GroupID = %q, want %q", m.GroupID, tt.wantGroup)
			}
			if m.Alias != tt.wantAlias {
				t.Errorf("Alias = %q, want %q", m.Alias, tt.wantAlias)
			}
			if m.Exact != tt.wantExact {
				t.Errorf("Exact = %v, want %v", m.Exact, tt.wantExact)
			}
		})
	}
}

func TestIndex_LongestAliasTieBreak(t *testing.T) {
	idx, err := NewIndex(Table{
		{ID: "1-1", Aliases: []string{"abc"}},
		{ID: "1-2", Aliases: []string{"xyz"}},
		{ID: "1-3", Aliases: []string{"abcd"}},
	})
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	// 两个等长别名都被包含，先出现者胜出
	m, ok := idx.Resolve("abc xyz")
	if !ok || m.GroupID != "1-1" {
		t.Errorf("Resolve(abc xyz) = %+v, %v; want group 1-1", m, ok)
	}

	// 更长的别名优先
	m, ok = idx.Resolve("abcd-xyz")
	if !ok || m.GroupID != "1-3" {
		t.Errorf("Resolve(abcd-xyz) = %+v, %v; want group 1-3", m, ok)
	}

	// 按字符而非字节比较长度
	idx, err = NewIndex(Table{
		{ID: "2-1", Aliases: []string{"华为"}},
		{ID: "2-2", Aliases: []string{"huawei"}},
	})
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	m, ok = idx.Resolve("华为huawei")
	if !ok || m.GroupID != "2-2" {
		t.Errorf("Resolve(华为huawei) = %+v, %v; want group 2-2", m, ok)
	}
}

func TestIndex_Canonical(t *testing.T) {
	idx, err := NewIndex(Table{
		{ID: "1-1", Aliases: []string{"  bad:name. ", "other"}},
	})
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	got, ok := idx.Canonical("1-1")
	if !ok || got != "bad-name" {
		t.Errorf("Canonical(1-1) = %q, %v; want bad-name", got, ok)
	}
	if _, ok := idx.Canonical("9-9"); ok {
		t.Error("Canonical(9-9) found, want missing")
	}

	m, ok := idx.Resolve("OTHER")
	if !ok || m.Canonical != "bad-name" {
		t.Errorf("Resolve(OTHER) = %+v, %v", m, ok)
	}
}

func TestIndex_Collisions(t *testing.T) {
	table := Table{
		{ID: "1-1", Aliases: []string{"Galaxy S24", "galaxys24"}},
		{ID: "1-2", Aliases: []string{"pixel"}},
		{ID: "1-3", Aliases: []string{"galaxy-s24"}},
	}

	idx, err := NewIndex(table)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	// 同组内的重复不算冲突，跨组冲突只记录一次
	collisions := idx.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("Collisions() = %v, want 1 entry", collisions)
	}
	c := collisions[0]
	if c.Key != "galaxys24" || c.KeptGroup != "1-3" || c.ReplacedGroup != "1-1" {
		t.Errorf("collision = %+v", c)
	}
	if !strings.Contains(c.String(), "galaxys24") {
		t.Errorf("String() = %q", c.String())
	}

	// 后者覆盖
	m, ok := idx.Resolve("galaxy s24")
	if !ok || m.GroupID != "1-3" {
		t.Errorf("Resolve() = %+v, %v; want group 1-3", m, ok)
	}

	if _, err := NewIndexStrict(table); err == nil {
		t.Error("NewIndexStrict() error = nil, want collision error")
	}
}

func TestIndex_DefaultTableHasNoCollisions(t *testing.T) {
	idx, err := NewIndexStrict(DefaultTable())
	if err != nil {
		t.Fatalf("NewIndexStrict(DefaultTable()) error = %v", err)
	}
	if got := len(idx.Table()); got != 26 {
		t.Errorf("len(Table()) = %d, want 26", got)
	}
}

func TestIndex_Lookup(t *testing.T) {
	idx := MustDefaultIndex()
	if id, ok := idx.Lookup(" vivo x200 pro "); !ok || id != "2-1" {
		t.Errorf("Lookup() = %q, %v", id, ok)
	}
	if _, ok := idx.Lookup("VIVO X200 PRO"); ok {
		t.Error("Lookup() is case-sensitive, want miss")
	}
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{name: "默认表", table: DefaultTable()},
		{name: "组别格式错误", table: Table{{ID: "A1", Aliases: []string{"x"}}}, wantErr: true},
		{name: "组别重复", table: Table{{ID: "1-1", Aliases: []string{"x"}}, {ID: "1-1", Aliases: []string{"y"}}}, wantErr: true},
		{name: "别名全空", table: Table{{ID: "1-1", Aliases: []string{" ", ""}}}, wantErr: true},
		{name: "无别名", table: Table{{ID: "1-1"}}, wantErr: true},
		{name: "空表", table: Table{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIndex_ImmutableAfterBuild(t *testing.T) {
	table := Table{{ID: "1-1", Aliases: []string{"pixel"}}}
	idx, err := NewIndex(table)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	table[0].Aliases[0] = "changed"

	if _, ok := idx.Resolve("pixel"); !ok {
		t.Error("index changed after caller mutated table")
	}
	got := idx.Table()
	got[0].ID = "9-9"
	if _, ok := idx.Canonical("1-1"); !ok {
		t.Error("Table() returned shared storage")
	}
}

func TestIndex_WidthFolding(t *testing.T) {
	idx, err := NewIndex(DefaultTable(), WithWidthFolding())
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	tests := []struct {
		name      string
		model     string
		wantGroup string
		wantExact bool
	}{
		{name: "全角别名", model: "ｉｐｈｏｎｅ１５", wantGroup: "2-2", wantExact: true},
		{name: "半角不受影响", model: "iphone15", wantGroup: "2-2", wantExact: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := idx.Resolve(tt.model)
			if !ok {
				t.Fatalf("Resolve(%q) not found", tt.model)
			}
			if m.GroupID != tt.wantGroup || m.Exact != tt.wantExact {
				t.Errorf("Resolve(%q) = %+v", tt.model, m)
			}
		})
	}
}
