package repository

import (
	"context"
	"fmt"

	"github.com/fit-control/fit-control/internal/models"
)

const planColumns = `id, name, plan_type, price, description, is_active, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (*models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	if err := row.Scan(&p.ID, &p.Name, &p.PlanType, &p.Price, &p.Description,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlan вставляет новый тарифный план и возвращает его ID.
func (s *Storage) CreatePlan(ctx context.Context, plan models.SubscriptionPlan) (int64, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_plans (name, plan_type, price, description, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		plan.Name, plan.PlanType, plan.Price, plan.Description, plan.IsActive).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ReadActivePlan возвращает действующий план по ID. Неактивный план
// неотличим от несуществующего: ErrNotFound.
func (s *Storage) ReadActivePlan(ctx context.Context, id int64) (*models.SubscriptionPlan, error) {
	const op = "storage.ReadActivePlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1 AND is_active`
	p, err := scanPlan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(op, err)
	}
	return p, nil
}

// ListPlans возвращает планы по возрастанию цены. При onlyActive
// неактивные планы отфильтровываются.
func (s *Storage) ListPlans(ctx context.Context, onlyActive bool) ([]*models.SubscriptionPlan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM subscription_plans
			  WHERE (NOT $1 OR is_active)
			  ORDER BY price`
	rows, err := s.DB.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.SubscriptionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
