// Package sweeper реализует регулярную проверку подписок залов.
//
// Проход по всем залам пересчитывает статус подписки и блокирует залы
// с истекшей подпиской. Операция идемпотентна: повторный запуск не делает
// ничего с уже заблокированными залами и никогда не активирует зал обратно.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/fit-control/fit-control/internal/lib/rabbitmq"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/metrics"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/subscription"
)

// GymRepository определяет методы хранилища, нужные проходу.
type GymRepository interface {
	ListGyms(ctx context.Context) ([]*models.Gym, error)
	DeactivateGym(ctx context.Context, gymID int64) error
}

// Publisher публикует событие в exchange уведомлений. Nil-безопасной
// обертки нет: при запуске без брокера передается nil и публикация
// пропускается.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// ChannelPublisher публикует события через канал RabbitMQ.
type ChannelPublisher struct {
	Ch *amqp.Channel
}

// Publish отправляет message в exchange "notifications" с ключом routingKey.
func (p *ChannelPublisher) Publish(routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.Ch, "notifications", routingKey, message)
}

// Result итоги одного прохода.
type Result struct {
	Checked int `json:"checked"`
	Blocked int `json:"blocked"`
}

// BlockedEvent событие блокировки зала для очереди уведомлений.
type BlockedEvent struct {
	GymID   int64  `json:"gym_id"`
	GymName string `json:"gym_name"`
}

// Service реализует проход по подпискам.
type Service struct {
	repo      GymRepository
	publisher Publisher
	log       *slog.Logger
}

// New создает новый Service. publisher может быть nil.
func New(repo GymRepository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Run выполняет один проход: пересчитывает статус каждого зала и блокирует
// активные залы с истекшей подпиской. Возвращает счетчики проверенных и
// заблокированных залов.
func (s *Service) Run(ctx context.Context) (Result, error) {
	gyms, err := s.repo.ListGyms(ctx)
	if err != nil {
		return Result{}, err
	}

	now := time.Now().UTC()
	var res Result
	for _, gym := range gyms {
		res.Checked++
		metrics.SweepCheckedTotal.Inc()

		status := subscription.Compute(gym, now)
		if status != subscription.StatusExpired || !gym.IsActive {
			continue
		}

		if err := s.repo.DeactivateGym(ctx, gym.ID); err != nil {
			s.log.Error("failed to block gym", slog.Int64("gym_id", gym.ID), sl.Err(err))
			continue
		}
		res.Blocked++
		metrics.SweepBlockedTotal.Inc()
		s.log.Warn("blocked gym with expired subscription",
			slog.Int64("gym_id", gym.ID), slog.String("gym_name", gym.Name))

		if s.publisher != nil {
			event := BlockedEvent{GymID: gym.ID, GymName: gym.Name}
			if err := s.publisher.Publish(rabbitmq.RoutingKeyGymBlocked, event); err != nil {
				s.log.Error("failed to publish blocked event", sl.Err(err))
			}
		}
	}

	s.log.Info("sweep finished",
		slog.Int("checked", res.Checked), slog.Int("blocked", res.Blocked))
	return res, nil
}

// reminderWindow за сколько дней до окончания подписки отправляется
// напоминание об оплате.
const reminderWindow = 3 * 24 * time.Hour

// ReminderEvent событие напоминания об оплате для очереди уведомлений.
type ReminderEvent struct {
	GymID      int64  `json:"gym_id"`
	GymName    string `json:"gym_name"`
	ExpiresAt  string `json:"expires_at"`
	DaysToStop int    `json:"days_to_stop"`
}

// Remind публикует напоминания об оплате для активных залов, у которых
// подписка или пробный период заканчивается в ближайшие дни.
func (s *Service) Remind(ctx context.Context) (int, error) {
	if s.publisher == nil {
		return 0, nil
	}
	gyms, err := s.repo.ListGyms(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	sent := 0
	for _, gym := range gyms {
		if !gym.IsActive {
			continue
		}
		end := gym.SubscriptionEndDate
		if gym.IsTrial {
			end = gym.TrialEndDate
		}
		if end == nil || end.Before(now) || end.Sub(now) > reminderWindow {
			continue
		}

		event := ReminderEvent{
			GymID:      gym.ID,
			GymName:    gym.Name,
			ExpiresAt:  end.Format("02-01-2006"),
			DaysToStop: int(end.Sub(now).Hours() / 24),
		}
		if err := s.publisher.Publish(rabbitmq.RoutingKeyPaymentReminder, event); err != nil {
			s.log.Error("failed to publish payment reminder",
				slog.Int64("gym_id", gym.ID), sl.Err(err))
			continue
		}
		sent++
	}

	s.log.Info("payment reminders sent", slog.Int("count", sent))
	return sent, nil
}

// RunLoop выполняет проход сразу и далее по тикеру, пока контекст жив.
func (s *Service) RunLoop(ctx context.Context, interval time.Duration) {
	runOnce := func() {
		if _, err := s.Run(ctx); err != nil {
			s.log.Error("sweep failed", sl.Err(err))
		}
		if _, err := s.Remind(ctx); err != nil {
			s.log.Error("payment reminders failed", sl.Err(err))
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runOnce()
		case <-ctx.Done():
			return
		}
	}
}
