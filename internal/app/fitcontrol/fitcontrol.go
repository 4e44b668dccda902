// Package fitcontrol собирает основное HTTP-приложение платформы:
// хранилище, кэш, брокер уведомлений, сервисы и маршруты.
package fitcontrol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/fit-control/fit-control/internal/cache"
	"github.com/fit-control/fit-control/internal/config"
	"github.com/fit-control/fit-control/internal/lib/jwt"
	"github.com/fit-control/fit-control/internal/lib/rabbitmq"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/migrations"
	authservice "github.com/fit-control/fit-control/internal/services/auth"
	clientservice "github.com/fit-control/fit-control/internal/services/client"
	expenseservice "github.com/fit-control/fit-control/internal/services/expense"
	gymservice "github.com/fit-control/fit-control/internal/services/gym"
	pairingservice "github.com/fit-control/fit-control/internal/services/pairing"
	paymentservice "github.com/fit-control/fit-control/internal/services/payment"
	planservice "github.com/fit-control/fit-control/internal/services/plan"
	sweeperservice "github.com/fit-control/fit-control/internal/services/sweeper"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// App основное HTTP-приложение платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
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

// New создает приложение: подключает зависимости и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = waitForDB(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер уведомлений опционален: без него проход по подпискам
	// просто не публикует события.
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

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	pairingService := pairingservice.New(db, cacheRedis, cfg.BotUsername, logger)
	gymService := gymservice.New(db, pairingService, cacheRedis, cfg.TrialPeriodDays, logger)
	authService := authservice.New(db, jwtMaker)
	clientService := clientservice.New(db, logger)
	paymentService := paymentservice.New(db, logger)
	expenseService := expenseservice.New(db, logger)
	planService := planservice.New(db, logger)
	sweeperService := sweeperservice.New(db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:    authService,
		Gym:     gymService,
		Pairing: pairingService,
		Client:  clientService,
		Payment: paymentService,
		Expense: expenseService,
		Plan:    planService,
		Sweeper: sweeperService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeResources()
		return err
	}
}

func (a *App) closeResources() {
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
