// Package expense содержит бизнес-логику учета расходов зала.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fit-control/fit-control/internal/models"
)

// Repository определяет методы работы с расходами в хранилище.
type Repository interface {
	CreateExpense(ctx context.Context, expense models.Expense) (int64, error)
	ListExpenses(ctx context.Context, gymID int64, limit, offset int) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, gymID, id int64, expense models.Expense) (int, error)
	RemoveExpense(ctx context.Context, gymID, id int64) (int, error)
}

// Service реализует бизнес-логику работы с расходами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func buildExpense(gymID int64, req models.DummyExpense) (models.Expense, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsNegative() {
		return models.Expense{}, fmt.Errorf("amount must not be negative")
	}

	when := time.Now().UTC()
	if req.ExpenseDate != "" {
		when, err = time.Parse("02-01-2006", req.ExpenseDate)
		if err != nil {
			return models.Expense{}, fmt.Errorf("invalid date: %w", err)
		}
	}
	return models.Expense{
		GymID:       gymID,
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		ExpenseDate: when,
	}, nil
}

// Create создает расход зала gymID.
func (s *Service) Create(ctx context.Context, gymID int64, req models.DummyExpense) (int64, error) {
	expense, err := buildExpense(gymID, req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return 0, err
	}
	s.log.Info("created expense", slog.Int64("expense_id", id), slog.Int64("gym_id", gymID))
	return id, nil
}

// List возвращает расходы зала с пагинацией.
func (s *Service) List(ctx context.Context, gymID int64, limit, offset int) ([]*models.Expense, error) {
	return s.repo.ListExpenses(ctx, gymID, limit, offset)
}

// Update обновляет расход и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, gymID, id int64, req models.DummyExpense) (int, error) {
	expense, err := buildExpense(gymID, req)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateExpense(ctx, gymID, id, expense)
}

// Remove удаляет расход и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, gymID, id int64) (int, error) {
	return s.repo.RemoveExpense(ctx, gymID, id)
}
