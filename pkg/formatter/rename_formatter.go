package formatter

import (
	"fmt"
	"strings"

	"github.com/easayliu/normname/internal/domain/models/rename"
	strutil "github.com/easayliu/normname/pkg/utils/string"
)

// maxListedFailures 通知中最多列出的失败条目
const maxListedFailures = 10

// PreviewLine 预览中的一行："- 相对路径  ->  新文件名"
func PreviewLine(p rename.Plan) string {
	return fmt.Sprintf("- %s  ->  %s", p.Relative, p.NewName)
}

// PreviewLines 格式化整个重命名计划
func PreviewLines(plans []rename.Plan) []string {
	lines := make([]string, 0, len(plans))
	for _, p := range plans {
		lines = append(lines, PreviewLine(p))
	}
	return lines
}

// FailureLine 失败记录："[失败] 原文件名 -> 新文件名: 错误"
func FailureLine(f rename.Failure) string {
	return fmt.Sprintf("[失败] %s -> %s: %s", f.Plan.SourceName(), f.Plan.NewName, f.Error)
}

// CompletionLine 完成提示
func CompletionLine(s rename.Summary) string {
	return fmt.Sprintf("完成：成功重命名 %d 个文件。", s.Renamed)
}

// SummaryHTML 生成 Telegram HTML 格式的批次摘要
func SummaryHTML(trigger string, s rename.Summary) string {
	icon := "✅"
	switch {
	case s.Canceled:
		icon = "⏹"
	case s.Failed > 0:
		icon = "⚠️"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>重命名完成</b> (%s)\n\n", icon, strutil.EscapeHTML(trigger))
	fmt.Fprintf(&sb, "📁 目录: <code>%s</code>\n", strutil.EscapeHTML(s.Root))
	fmt.Fprintf(&sb, "📝 计划: %d  成功: %d  失败: %d", s.Planned, s.Renamed, s.Failed)
	if s.Skipped > 0 {
		fmt.Fprintf(&sb, "  未执行: %d", s.Skipped)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "⏱ 耗时: %s\n", FormatDuration(s.Duration))
	if s.RunID != "" {
		fmt.Fprintf(&sb, "🆔 <code>%s</code>\n", s.RunID)
	}

	for i, f := range s.Failures {
		if i == maxListedFailures {
			fmt.Fprintf(&sb, "… 另有 %d 个失败\n", len(s.Failures)-maxListedFailures)
			break
		}
		sb.WriteString(strutil.EscapeHTML(FailureLine(f)))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
