package strutil

import (
	"strings"
	"unicode/utf8"
)

// EscapeHTML 转义HTML特殊字符
// 遵循 Telegram Bot API HTML 格式规范,仅需转义 4 个字符: & < > "
// 其他字符(包括 emoji 和中文)无需转义
func EscapeHTML(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
	)
	return replacer.Replace(text)
}

// CleanUTF8 确保文本是有效的UTF-8编码
func CleanUTF8(text string) string {
	if !utf8.ValidString(text) {
		return strings.ToValidUTF8(text, "?")
	}
	return text
}
