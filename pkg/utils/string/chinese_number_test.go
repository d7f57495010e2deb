package strutil

import "testing"

func TestChineseToNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "阿拉伯数字", input: "3", want: 3, wantOK: true},
		{name: "多位阿拉伯数字", input: "105", want: 105, wantOK: true},
		{name: "全角数字", input: "１２", want: 12, wantOK: true},
		{name: "阿拉伯-印度数字", input: "٣", want: 3, wantOK: true},
		{name: "天城文数字", input: "१२", want: 12, wantOK: true},
		{name: "不同文字的数字混排", input: "1٢", want: 12, wantOK: true},
		{name: "首尾空白", input: "  7 ", want: 7, wantOK: true},
		{name: "单个中文数字", input: "三", want: 3, wantOK: true},
		{name: "省略一的十", input: "十", want: 10, wantOK: true},
		{name: "十二", input: "十二", want: 12, wantOK: true},
		{name: "二十", input: "二十", want: 20, wantOK: true},
		{name: "一百零五", input: "一百零五", want: 105, wantOK: true},
		{name: "一百十", input: "一百十", want: 110, wantOK: true},
		{name: "两", input: "两", want: 2, wantOK: true},
		{name: "大写数字", input: "贰拾叁", want: 23, wantOK: true},
		{name: "繁体大写", input: "貳佰陸", want: 206, wantOK: true},
		{name: "千位", input: "一千零一", want: 1001, wantOK: true},
		{name: "〇作零", input: "一〇", want: 0, wantOK: true},
		{name: "内部空白被忽略", input: "十 二", want: 12, wantOK: true},
		{name: "空字符串", input: "", wantOK: false},
		{name: "纯空白", input: "   ", wantOK: false},
		{name: "混入非法字符", input: "十x", wantOK: false},
		{name: "混合阿拉伯与中文", input: "1十", wantOK: false},
		{name: "溢出", input: "99999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChineseToNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ChineseToNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ChineseToNumber(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumberToChinese(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "零"},
		{1, "一"},
		{9, "九"},
		{10, "十"},
		{12, "十二"},
		{20, "二十"},
		{99, "九十九"},
		{100, "一百"},
		{105, "一百零五"},
		{110, "一百十"},
		{999, "九百九十九"},
		{1000, "1000"},
		{-1, "-1"},
	}

	for _, tt := range tests {
		if got := NumberToChinese(tt.input); got != tt.want {
			t.Errorf("NumberToChinese(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestChineseNumberRoundTrip(t *testing.T) {
	for n := 0; n < 1000; n++ {
		text := NumberToChinese(n)
		got, ok := ChineseToNumber(text)
		if !ok || got != n {
			t.Fatalf("round trip %d -> %q -> %d (ok=%v)", n, text, got, ok)
		}
	}
}

func TestIsDecimalDigit(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'0', true},
		{'9', true},
		{'５', true},
		{'٣', true},
		{'三', false},
		{'a', false},
		{'²', false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			if got := IsDecimalDigit(tt.r); got != tt.want {
				t.Errorf("IsDecimalDigit(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestIsChineseNumeral(t *testing.T) {
	for _, r := range "零〇两一二三四五六七八九壹贰貳叁肆伍陆陸柒捌玖十拾百佰千仟" {
		if !IsChineseNumeral(r) {
			t.Errorf("IsChineseNumeral(%q) = false", r)
		}
	}
	for _, r := range "个点第a1万" {
		if IsChineseNumeral(r) {
			t.Errorf("IsChineseNumeral(%q) = true", r)
		}
	}
}
