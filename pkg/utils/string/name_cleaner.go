package strutil

import (
	"strings"

	"golang.org/x/text/width"
)

// SanitizeComponent 清理文件名组件：去非法字符、归一化空白、清理边界连接符/空白/点
// 结果可能为空字符串，调用方需自行视为"无可用内容"
func SanitizeComponent(text string) string {
	text = InvalidCharsPattern.ReplaceAllString(text, "-")
	text = WhitespacePattern.ReplaceAllString(text, " ")
	text = EdgeConnectorPattern.ReplaceAllString(text, "")
	return strings.TrimRight(text, " .")
}

// NormalizeModelKey 规范化型号用于匹配：小写、去除所有空白和连接符
// 全角字符保持原样，需要折叠时先调用 FoldWidth
func NormalizeModelKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return ConnectorRunPattern.ReplaceAllString(s, "")
}

// FoldWidth 全角字母数字转半角（ＡＢ１ -> AB1）
func FoldWidth(s string) string {
	return width.Fold.String(s)
}
