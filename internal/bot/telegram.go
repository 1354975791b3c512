package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/leaguehub/internal/fetch"
)

// Sender delivers one message to Telegram.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	sender  Sender
	handler *Handler
	chatID  int64
	guards  fetch.KeyedGuard[int64]
	wg      sync.WaitGroup
}

func NewTelegramBot(token string, chatID int64, digests Digests) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		sender:  bot,
		handler: NewHandler(digests),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()
	defer t.wg.Wait()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			t.dispatch(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

// dispatch claims the chat's newest generation in arrival order and answers in
// the background. A newer command in the same chat cancels this one and its
// reply is dropped.
func (t *TelegramBot) dispatch(ctx context.Context, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	guard, ticket, ctx := t.guards.Begin(ctx, chatID)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.guards.Done(chatID, guard, ticket)
		t.handleUpdate(ctx, guard, ticket, update)
	}()
}

func (t *TelegramBot) handleUpdate(ctx context.Context, guard *fetch.Guard, ticket fetch.Ticket, update tgbotapi.Update) {
	msg := t.handler.HandleCommand(ctx, update)

	sent := guard.Commit(ticket, func() {
		if _, err := t.sender.Send(msg); err != nil {
			slog.Error("Error sending message", "error", err)
		}
	})
	if !sent {
		slog.Info("Dropped superseded reply", "chat_id", update.Message.Chat.ID, "command", update.Message.Command())
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	_, err := t.sender.Send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}
