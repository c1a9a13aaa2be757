package notifier

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// CommandHandler is called when a user command is received and returns the reply.
type CommandHandler func(command string) string

// StartPolling begins long-polling for Telegram commands. Only messages from
// the configured chat are answered. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			t.log.Info("telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			if update.Message.Chat.ID != t.chatID {
				t.log.Warn("ignoring message from unknown chat", zap.Int64("chat_id", update.Message.Chat.ID))
				continue
			}
			text := strings.TrimSpace(update.Message.Text)
			if text == "" {
				continue
			}
			t.log.Info("received command", zap.String("text", text))
			if reply := handler(text); reply != "" {
				if err := t.Send(reply); err != nil {
					t.log.Error("send reply", zap.Error(err))
				}
			}
		}
	}
}
