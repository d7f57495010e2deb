package formatter

import (
	"fmt"
	"time"
)

// FormatDuration 格式化持续时间为可读字符串
func FormatDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "0秒"
	case d < time.Second:
		return fmt.Sprintf("%d毫秒", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1f秒", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%d分%d秒", int(d.Minutes()), int(d.Seconds())%60)
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1f小时", d.Hours())
	default:
		days := int(d.Hours() / 24)
		hours := d.Hours() - float64(days*24)
		if hours >= 0.05 {
			return fmt.Sprintf("%d天%.1f小时", days, hours)
		}
		return fmt.Sprintf("%d天", days)
	}
}

// FormatTimeAgo 格式化时间为"多久之前"的格式
func FormatTimeAgo(t time.Time) string {
	return formatTimeAgo(t, time.Now())
}

func formatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "从未"
	}

	duration := now.Sub(t)
	switch {
	case duration < 0:
		return "未来时间"
	case duration < time.Minute:
		return "刚刚"
	case duration < time.Hour:
		return fmt.Sprintf("%d分钟前", int(duration.Minutes()))
	case duration < 24*time.Hour:
		return fmt.Sprintf("%d小时前", int(duration.Hours()))
	case duration < 7*24*time.Hour:
		return fmt.Sprintf("%d天前", int(duration.Hours()/24))
	case duration < 30*24*time.Hour:
		return fmt.Sprintf("%d周前", int(duration.Hours()/(24*7)))
	case duration < 365*24*time.Hour:
		return fmt.Sprintf("%d个月前", int(duration.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%d年前", int(duration.Hours()/(24*365)))
	}
}
