package notification

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/normname/internal/application/contracts"
	"github.com/easayliu/normname/internal/domain/models/rename"
	"github.com/easayliu/normname/pkg/formatter"
	"github.com/easayliu/normname/pkg/logger"
)

// Broadcaster 向所有接收者广播消息，*telegram.Client 满足该接口
type Broadcaster interface {
	Broadcast(text, parseMode string) error
}

// TelegramNotifier 通过 Telegram 发送批次摘要
type TelegramNotifier struct {
	client    Broadcaster
	skipEmpty bool
}

// NewTelegramNotifier 创建 Telegram 通知服务；skipEmpty 为 true 时不发送空批次
func NewTelegramNotifier(client Broadcaster, skipEmpty bool) contracts.Notifier {
	return &TelegramNotifier{client: client, skipEmpty: skipEmpty}
}

func (n *TelegramNotifier) NotifyRun(ctx context.Context, trigger string, summary rename.Summary) error {
	if n.skipEmpty && summary.Planned == 0 {
		logger.Debug("Skip notification for empty run", "trigger", trigger, "run_id", summary.RunID)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.client.Broadcast(formatter.SummaryHTML(trigger, summary), tgbotapi.ModeHTML)
}

// NoopNotifier 未启用通知时使用
type NoopNotifier struct{}

func (NoopNotifier) NotifyRun(context.Context, string, rename.Summary) error {
	return nil
}
