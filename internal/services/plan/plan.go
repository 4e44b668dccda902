// Package plan содержит бизнес-логику тарифных планов платформы.
package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fit-control/fit-control/internal/models"
)

// Repository определяет методы работы с планами в хранилище.
type Repository interface {
	CreatePlan(ctx context.Context, plan models.SubscriptionPlan) (int64, error)
	ListPlans(ctx context.Context, onlyActive bool) ([]*models.SubscriptionPlan, error)
}

// Service реализует бизнес-логику тарифных планов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает тарифный план.
func (s *Service) Create(ctx context.Context, req models.DummySubscriptionPlan) (int64, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return 0, fmt.Errorf("invalid price: %w", err)
	}
	if price.IsNegative() {
		return 0, fmt.Errorf("price must not be negative")
	}

	id, err := s.repo.CreatePlan(ctx, models.SubscriptionPlan{
		Name:        req.Name,
		PlanType:    req.PlanType,
		Price:       price,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("created subscription plan", slog.Int64("plan_id", id), slog.String("plan_type", req.PlanType))
	return id, nil
}

// List возвращает планы. Для администратора зала — только активные.
func (s *Service) List(ctx context.Context, onlyActive bool) ([]*models.SubscriptionPlan, error) {
	return s.repo.ListPlans(ctx, onlyActive)
}
