// Package sweeper собирает приложение фоновой проверки подписок.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/fit-control/fit-control/internal/config"
	"github.com/fit-control/fit-control/internal/lib/rabbitmq"
	"github.com/fit-control/fit-control/internal/lib/sl"
	sweeperservice "github.com/fit-control/fit-control/internal/services/sweeper"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// App приложение периодической проверки подписок.
type App struct {
	service  *sweeperservice.Service
	interval time.Duration
	conn     *amqp.Connection
	ch       *amqp.Channel
	db       *repository.Storage
	logger   *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения проверки подписок.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err := waitForDB(db); err != nil {
		return nil, err
	}

	var conn *amqp.Connection
	var ch *amqp.Channel
	var publisher sweeperservice.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
		}
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
		}
		publisher = &sweeperservice.ChannelPublisher{Ch: ch}
	} else {
		logger.Warn("RabbitMQ url is not set, notifications are disabled")
	}

	return &App{
		service:  sweeperservice.New(db, publisher, logger),
		interval: cfg.SweepInterval,
		conn:     conn,
		ch:       ch,
		db:       db,
		logger:   logger,
	}, nil
}

// Run запускает цикл проверки и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("sweeper started", slog.Duration("interval", a.interval))
	a.service.RunLoop(ctx, a.interval)
	a.close()
	return nil
}

// RunOnce выполняет единственный проход и завершает работу.
func (a *App) RunOnce(ctx context.Context) error {
	defer a.close()
	res, err := a.service.Run(ctx)
	if err != nil {
		return err
	}
	if _, err := a.service.Remind(ctx); err != nil {
		a.logger.Error("payment reminders failed", sl.Err(err))
	}
	a.logger.Info("one-shot sweep finished",
		slog.Int("checked", res.Checked), slog.Int("blocked", res.Blocked))
	return nil
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close RabbitMQ channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close RabbitMQ connection", sl.Err(err))
		}
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
