// Package notifier отправляет уведомления администраторам в Telegram
// по событиям из RabbitMQ.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fit-control/fit-control/internal/lib/sl"
)

// MessageSender абстрагирует отправку сообщений в Telegram.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// GymBlockedEvent содержит данные события блокировки зала.
type GymBlockedEvent struct {
	GymID   int64  `json:"gym_id"`
	GymName string `json:"gym_name"`
	Reason  string `json:"reason"`
}

// PaymentReminderEvent содержит данные напоминания об оплате.
type PaymentReminderEvent struct {
	GymID      int64  `json:"gym_id"`
	GymName    string `json:"gym_name"`
	ExpiresAt  string `json:"expires_at"`
	DaysToStop int    `json:"days_to_stop"`
}

// NotifierService обрабатывает сообщения очередей и пишет администратору.
type NotifierService struct {
	bot         MessageSender
	adminChatID int64
	log         *slog.Logger
}

// New создает новый экземпляр NotifierService.
func New(bot MessageSender, adminChatID int64, log *slog.Logger) *NotifierService {
	return &NotifierService{
		bot:         bot,
		adminChatID: adminChatID,
		log:         log,
	}
}

// HandleGymBlocked обрабатывает сообщение из очереди notification.gym_blocked.
func (s *NotifierService) HandleGymBlocked(body []byte) error {
	const op = "notifier.HandleGymBlocked"
	var event GymBlockedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	text := fmt.Sprintf("Zal bloklandi: %s (ID %d)\nSabab: %s",
		event.GymName, event.GymID, event.Reason)
	if _, err := s.bot.Send(tgbotapi.NewMessage(s.adminChatID, text)); err != nil {
		s.log.Error("failed to send gym blocked notification", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("gym blocked notification sent",
		slog.Int64("gym_id", event.GymID))
	return nil
}

// HandlePaymentReminder обрабатывает сообщение из очереди notification.payment_reminder.
func (s *NotifierService) HandlePaymentReminder(body []byte) error {
	const op = "notifier.HandlePaymentReminder"
	var event PaymentReminderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	text := fmt.Sprintf("To'lov eslatmasi: %s (ID %d)\nObuna %s da tugaydi, %d kun qoldi.",
		event.GymName, event.GymID, event.ExpiresAt, event.DaysToStop)
	if _, err := s.bot.Send(tgbotapi.NewMessage(s.adminChatID, text)); err != nil {
		s.log.Error("failed to send payment reminder", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment reminder sent", slog.Int64("gym_id", event.GymID))
	return nil
}
