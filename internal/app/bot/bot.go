// Package bot собирает приложение Telegram-бота регистрации клиентов.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	botpkg "github.com/fit-control/fit-control/internal/bot"
	botapi "github.com/fit-control/fit-control/internal/bot/api"
	"github.com/fit-control/fit-control/internal/bot/handshake"
	"github.com/fit-control/fit-control/internal/bot/session"
	"github.com/fit-control/fit-control/internal/config"
)

// App приложение Telegram-бота.
type App struct {
	bot    *botpkg.Bot
	logger *slog.Logger
}

// New создает новый экземпляр приложения бота.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is not set")
	}

	tg, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	backend := botapi.New(cfg.APIBaseURL, cfg.APIUsername, cfg.APIPassword)
	hs := handshake.New(backend, session.NewStore(), logger)

	return &App{
		bot:    botpkg.New(tg, hs, logger),
		logger: logger,
	}, nil
}

// Run запускает long-polling бота и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	a.bot.Run(ctx)
	return nil
}
