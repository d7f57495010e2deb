package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/normname/internal/infrastructure/config"
	"github.com/easayliu/normname/pkg/logger"
	strutil "github.com/easayliu/normname/pkg/utils/string"
)

// Sender 发送 Telegram 消息的最小接口，*tgbotapi.BotAPI 满足该接口
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Client struct {
	chatIDs []int64
	bot     Sender
}

// NewClient 连接 Telegram Bot API
func NewClient(cfg *config.TelegramConfig) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot connected successfully", "username", bot.Self.UserName)
	return NewClientWithSender(cfg, bot), nil
}

// NewClientWithSender 使用已有的发送器创建客户端
func NewClientWithSender(cfg *config.TelegramConfig, sender Sender) *Client {
	return &Client{
		chatIDs: append([]int64(nil), cfg.ChatIDs...),
		bot:     sender,
	}
}

// ChatIDs 配置的接收者
func (c *Client) ChatIDs() []int64 {
	return append([]int64(nil), c.chatIDs...)
}

func (c *Client) SendMessage(chatID int64, text, parseMode string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	msg := tgbotapi.NewMessage(chatID, strutil.CleanUTF8(text))
	if parseMode != "" {
		msg.ParseMode = parseMode
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// Broadcast 向所有配置的 chat 发送消息；单个失败不影响其余接收者
func (c *Client) Broadcast(text, parseMode string) error {
	var errs []error
	for _, chatID := range c.chatIDs {
		if err := c.SendMessage(chatID, text, parseMode); err != nil {
			logger.Error("Failed to send notification", "chat_id", chatID, "error", err)
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
			continue
		}
		logger.Debug("Notification sent", "chat_id", chatID)
	}
	return errors.Join(errs...)
}
