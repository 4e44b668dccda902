// Package bot связывает Telegram-транспорт с диалогом регистрации.
//
// Обновления обрабатываются последовательно, поэтому сообщения одного
// пользователя не перегоняют друг друга.
package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fit-control/fit-control/internal/bot/handshake"
	"github.com/fit-control/fit-control/internal/lib/sl"
)

// Bot принимает обновления Telegram и отвечает через диалог регистрации.
type Bot struct {
	api       *tgbotapi.BotAPI
	handshake *handshake.Handshake
	log       *slog.Logger
}

// New создает новый Bot.
func New(api *tgbotapi.BotAPI, hs *handshake.Handshake, log *slog.Logger) *Bot {
	return &Bot{
		api:       api,
		handshake: hs,
		log:       log,
	}
}

// Run запускает long-polling и блокируется до отмены контекста.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("bot started", slog.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	reply := b.handshake.Handle(ctx, msg.From.ID, msg.From.UserName, msg.Text)
	if reply == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		b.log.Error("failed to send reply",
			slog.Int64("chat_id", msg.Chat.ID), sl.Err(err))
	}
}
