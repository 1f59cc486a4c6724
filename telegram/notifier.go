// Package telegram provides a Telegram Bot API implementation of
// pagewatch.Notifier.
package telegram

import (
	"context"
	"fmt"

	"github.com/fwojciec/pagewatch"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Ensure Notifier implements pagewatch.Notifier at compile time.
var _ pagewatch.Notifier = (*Notifier)(nil)

// Notifier delivers notifications to a single Telegram chat.
// Delivery failures are returned to the caller and not retried here.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a Notifier for the given bot token and chat ID.
// Returns an error if the token is rejected by the Telegram API.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// Notify sends the rendered notification text to the configured chat.
func (n *Notifier) Notify(ctx context.Context, notification pagewatch.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, notification.Message())
	if _, err := n.bot.Send(msg); err != nil {
		return pagewatch.Errorf(pagewatch.EUNAVAILABLE, "sending Telegram message: %v", err)
	}
	return nil
}
