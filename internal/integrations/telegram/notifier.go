package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrSend = errors.New("telegram: send failed")

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier pushes platform notifications to users' Telegram chats
type Notifier struct {
	bot *tgbotapi.BotAPI
	log Logger
}

func NewNotifier(token string, log Logger) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, tgbotapi.APIEndpoint, http.DefaultClient, log)
}

// NewNotifierWithEndpoint targets a custom Bot API endpoint (format "<base>/bot%s/%s")
func NewNotifierWithEndpoint(token, endpoint string, client *http.Client, log Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: init bot: %w", err)
	}
	log.Info("Telegram notifier authorised as @%s", bot.Self.UserName)
	return &Notifier{bot: bot, log: log}, nil
}

// Notify sends "title\n\nmessage" to chatID
func (n *Notifier) Notify(ctx context.Context, chatID int64, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("*%s*\n\n%s", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, title), tgbotapi.EscapeText(tgbotapi.ModeMarkdown, message)))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error("Telegram send to chat %d failed: %v", chatID, err)
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}
