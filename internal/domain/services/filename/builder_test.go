package filename

import (
	"errors"
	"sync"
	"testing"

	"github.com/easayliu/normname/internal/domain/services/group"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	idx, err := group.NewIndex(group.DefaultTable())
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return NewBuilder(idx)
}

func TestBuilder_Build(t *testing.T) {
	b := newTestBuilder(t)

	tests := []struct {
		name    string
		stem    string
		want    string
		wantErr error
	}{
		{name: "噪声前缀命中组别", stem: "IMG_乱码---小米15第三个点(1)", want: "1-1_小米15_第三个点"},
		{name: "未知机型保留原样", stem: "未知机型第2个点", want: "未知机型_第二个点"},
		{name: "破折号前缀与点位", stem: "xx—vivo x200 pro 第 十二 个 点位 备注", want: "2-1_vivo x200 pro_第十二个点"},
		{name: "尾部被忽略", stem: "小米15第三个点--abc", want: "1-1_小米15_第三个点"},
		{name: "大写数字", stem: "华为mate60第壹佰零伍点", want: "3-1_华为mate60_第一百零五个点"},
		{name: "空白容忍", stem: "小米15 第3 个 点", want: "1-1_小米15_第三个点"},
		{name: "单连字符保留在型号中", stem: "DSC-小米15-第2点", want: "1-1_小米15_第二个点"},
		{name: "破折号后的型号", stem: "abc——def第3点", want: "def_第三个点"},
		{name: "英文别名输出规范型号", stem: "xiaomi15第1点", want: "1-1_小米15_第一个点"},
		{name: "模糊匹配取最长别名", stem: "oppo find x8 pro max第4点", want: "1-3_oppo find x8_第四个点"},
		{name: "非法字符被替换", stem: "my:phone第10点", want: "my-phone_第十个点"},
		{name: "全角型号原样输出", stem: "_ ３第2点", want: "３_第二个点"},
		{name: "其他文字的十进制序号", stem: "小米15第٣点", want: "1-1_小米15_第三个点"},
		{name: "无匹配", stem: "randomfile123", wantErr: ErrPatternNotFound},
		{name: "型号为空", stem: "第1点", wantErr: ErrPatternNotFound},
		{name: "型号清洗后为空", stem: "a---第1点", wantErr: ErrEmptyModel},
		{name: "序号溢出", stem: "小米15第99999999999点", wantErr: ErrInvalidNumeral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Build(tt.stem)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Build(%q) error = %v, want %v", tt.stem, err, tt.wantErr)
				}
				if got != "" {
					t.Errorf("Build(%q) = %q on error, want empty", tt.stem, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build(%q) unexpected error: %v", tt.stem, err)
			}
			if got != tt.want {
				t.Errorf("Build(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}

func TestBuilder_Explain(t *testing.T) {
	b := newTestBuilder(t)

	r := b.Explain("IMG---huawei mate 60第十二点")
	if r.Err != nil {
		t.Fatalf("Explain() error = %v", r.Err)
	}
	if r.Model != "huawei mate 60" {
		t.Errorf("Model = %q", r.Model)
	}
	if r.Numeral != "十二" || r.Number != 12 {
		t.Errorf("Numeral/Number = %q/%d", r.Numeral, r.Number)
	}
	if r.GroupID != "3-1" || r.Alias != "huaweimate60" {
		t.Errorf("GroupID/Alias = %q/%q", r.GroupID, r.Alias)
	}
	if r.NewStem != "3-1_华为mate60_第十二个点" {
		t.Errorf("NewStem = %q", r.NewStem)
	}
	if !r.Matched() {
		t.Error("Matched() = false, want true")
	}

	miss := b.Explain("nothing here")
	if !errors.Is(miss.Err, ErrPatternNotFound) || miss.Matched() {
		t.Errorf("Explain(miss) = %+v", miss)
	}
}

func TestBuilder_CustomTable(t *testing.T) {
	idx, err := group.NewIndex(group.Table{
		{ID: "9-1", Aliases: []string{" Pixel 9 ", "pixel9"}},
	})
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	b := NewBuilder(idx)

	got, err := b.Build("PIXEL-9第7点")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got != "9-1_Pixel 9_第七个点" {
		t.Errorf("Build() = %q", got)
	}

	// 默认表中的型号不再命中
	got, err = b.Build("小米15第1点")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got != "小米15_第一个点" {
		t.Errorf("Build() = %q", got)
	}
}

func TestBuilder_NilIndex(t *testing.T) {
	b := NewBuilder(nil)
	got, err := b.Build("小米15第1点")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got != "小米15_第一个点" {
		t.Errorf("Build() = %q", got)
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	b := newTestBuilder(t)
	stems := []string{
		"IMG_乱码---小米15第三个点(1)",
		"oppo find x8 pro max第4点",
		"mate6第1点",
		"未知机型第2个点",
	}

	want := make([]string, len(stems))
	for i, s := range stems {
		want[i], _ = b.Build(s)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for j, s := range stems {
					if got, _ := b.Build(s); got != want[j] {
						t.Errorf("Build(%q) = %q, want %q", s, got, want[j])
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
