// Package notificationsender собирает приложение доставки уведомлений:
// потребляет очереди RabbitMQ и пишет администратору в Telegram.
package notificationsender

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/streadway/amqp"

	"github.com/fit-control/fit-control/internal/config"
	"github.com/fit-control/fit-control/internal/lib/rabbitmq"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/services/notifier"
)

// App приложение доставки уведомлений.
type App struct {
	service *notifier.NotifierService
	conn    *amqp.Connection
	ch      *amqp.Channel
	logger  *slog.Logger
}

// New создает новый экземпляр приложения доставки уведомлений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.BotToken == "" || cfg.AdminChatID == 0 {
		return nil, fmt.Errorf("telegram bot token or admin chat id is not set")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	return &App{
		service: notifier.New(bot, cfg.AdminChatID, logger),
		conn:    conn,
		ch:      ch,
		logger:  logger,
	}, nil
}

// Run подписывается на очереди и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	if err := rabbitmq.ConsumeMessages(ctx, a.ch, "notification.gym_blocked", a.service.HandleGymBlocked); err != nil {
		return fmt.Errorf("failed to start gym blocked consumer: %w", err)
	}
	if err := rabbitmq.ConsumeMessages(ctx, a.ch, "notification.payment_reminder", a.service.HandlePaymentReminder); err != nil {
		return fmt.Errorf("failed to start payment reminder consumer: %w", err)
	}
	a.logger.Info("notification sender started")

	<-ctx.Done()

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close RabbitMQ channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close RabbitMQ connection", sl.Err(err))
	}
	a.logger.Info("notification sender shutting down gracefully")
	return nil
}
