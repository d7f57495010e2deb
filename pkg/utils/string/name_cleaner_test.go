package strutil

import (
	"strings"
	"testing"
)

func TestSanitizeComponent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "非法字符替换为连字符",
			input:    "bad<name>/x",
			expected: "bad-name--x",
		},
		{
			name:     "全部非法字符",
			input:    `a<>:"/\|?*b`,
			expected: "a---------b",
		},
		{
			name:     "合并连续空白",
			input:    "oppo   find\tx8",
			expected: "oppo find x8",
		},
		{
			name:     "去除首尾连接符",
			input:    "--_ 小米15 —–_",
			expected: "小米15",
		},
		{
			name:     "去除尾部点号",
			input:    "型号...",
			expected: "型号",
		},
		{
			name:     "尾部点号与空格交替",
			input:    "型号. . ",
			expected: "型号",
		},
		{
			name:     "保留内部连接符",
			input:    "find-x8_pro",
			expected: "find-x8_pro",
		},
		{
			name:     "首部非法字符被替换后再去除",
			input:    "?小米15",
			expected: "小米15",
		},
		{
			name:     "空字符串",
			input:    "",
			expected: "",
		},
		{
			name:     "仅含连接符",
			input:    "--—__",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeComponent(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeComponent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeComponent_NoIllegalCharsRemain(t *testing.T) {
	inputs := []string{"bad<name>/x", `C:\dir\file?.txt`, `"quoted"|pipe*`}
	for _, in := range inputs {
		out := SanitizeComponent(in)
		if strings.ContainsAny(out, `<>:"/\|?*`) {
			t.Errorf("SanitizeComponent(%q) = %q still contains illegal characters", in, out)
		}
		if strings.HasSuffix(out, ".") || strings.HasSuffix(out, " ") {
			t.Errorf("SanitizeComponent(%q) = %q has trailing dot or space", in, out)
		}
	}
}

func TestNormalizeModelKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OPPO Find-X8 Pro", "oppofindx8pro"},
		{"oppofindx8pro", "oppofindx8pro"},
		{"vivo_x200 — pro", "vivox200pro"},
		{"  小米 15 ", "小米15"},
		{"ＯＰＰＯ　Ｆｉｎｄ", "ｏｐｐｏｆｉｎｄ"},
		{"３", "３"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeModelKey(tt.input); got != tt.expected {
				t.Errorf("NormalizeModelKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFoldWidth(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ｉｐｈｏｎｅ１５", "iphone15"},
		{"ＯＰＰＯ Find", "OPPO Find"},
		{"小米15", "小米15"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FoldWidth(tt.input); got != tt.expected {
				t.Errorf("FoldWidth(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
