package contracts

import (
	"context"

	"github.com/easayliu/normname/internal/domain/models/rename"
)

// Notifier 批次完成通知
type Notifier interface {
	// NotifyRun 发送一次重命名批次的摘要，trigger 标识触发来源（如 "schedule:nightly"、"watch"）
	NotifyRun(ctx context.Context, trigger string, summary rename.Summary) error
}
