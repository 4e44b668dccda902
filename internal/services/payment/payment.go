// Package payment содержит бизнес-логику учета платежей клиентов.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fit-control/fit-control/internal/models"
)

// Repository определяет методы работы с платежами в хранилище.
type Repository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int64, error)
	ListPayments(ctx context.Context, gymID int64, limit, offset int) ([]*models.Payment, error)
	UpdatePayment(ctx context.Context, gymID, id int64, payment models.Payment) (int, error)
	RemovePayment(ctx context.Context, gymID, id int64) (int, error)
}

// Service реализует бизнес-логику работы с платежами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func parseAmountAndDate(amount, date string) (decimal.Decimal, time.Time, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("invalid amount: %w", err)
	}
	if parsed.IsNegative() {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("amount must not be negative")
	}

	when := time.Now().UTC()
	if date != "" {
		when, err = time.Parse("02-01-2006", date)
		if err != nil {
			return decimal.Decimal{}, time.Time{}, fmt.Errorf("invalid date: %w", err)
		}
	}
	return parsed, when, nil
}

// Create создает платеж клиента в зале gymID.
func (s *Service) Create(ctx context.Context, gymID int64, req models.DummyPayment) (int64, error) {
	amount, paymentDate, err := parseAmountAndDate(req.Amount, req.PaymentDate)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreatePayment(ctx, models.Payment{
		GymID:       gymID,
		ClientID:    req.ClientID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("created payment", slog.Int64("payment_id", id), slog.Int64("gym_id", gymID))
	return id, nil
}

// List возвращает платежи зала с пагинацией.
func (s *Service) List(ctx context.Context, gymID int64, limit, offset int) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, gymID, limit, offset)
}

// Update обновляет платеж и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, gymID, id int64, req models.DummyPayment) (int, error) {
	amount, paymentDate, err := parseAmountAndDate(req.Amount, req.PaymentDate)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdatePayment(ctx, gymID, id, models.Payment{
		Amount:      amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
}

// Remove удаляет платеж и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, gymID, id int64) (int, error) {
	return s.repo.RemovePayment(ctx, gymID, id)
}
