package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fit-control/fit-control/internal/models"
)

const gymColumns = `id, name, address, phone, email, is_active,
			      subscription_plan_id, subscription_start_date, subscription_end_date,
			      is_trial, trial_start_date, trial_end_date, created_at, updated_at`

func scanGym(row interface{ Scan(...any) error }) (*models.Gym, error) {
	var g models.Gym
	var planID sql.NullInt64
	var subStart, subEnd, trialStart, trialEnd sql.NullTime
	if err := row.Scan(&g.ID, &g.Name, &g.Address, &g.Phone, &g.Email, &g.IsActive,
		&planID, &subStart, &subEnd, &g.IsTrial, &trialStart, &trialEnd,
		&g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if planID.Valid {
		g.SubscriptionPlanID = &planID.Int64
	}
	if subStart.Valid {
		g.SubscriptionStartDate = &subStart.Time
	}
	if subEnd.Valid {
		g.SubscriptionEndDate = &subEnd.Time
	}
	if trialStart.Valid {
		g.TrialStartDate = &trialStart.Time
	}
	if trialEnd.Valid {
		g.TrialEndDate = &trialEnd.Time
	}
	return &g, nil
}

// CreateGym вставляет новый зал и возвращает его ID.
func (s *Storage) CreateGym(ctx context.Context, gym models.Gym) (int64, error) {
	const op = "storage.CreateGym"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO gyms (name, address, phone, email, is_active, is_trial,
			      trial_start_date, trial_end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		gym.Name, gym.Address, gym.Phone, gym.Email, gym.IsActive, gym.IsTrial,
		gym.TrialStartDate, gym.TrialEndDate).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ReadGym возвращает зал по его ID.
func (s *Storage) ReadGym(ctx context.Context, id int64) (*models.Gym, error) {
	const op = "storage.ReadGym"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + gymColumns + ` FROM gyms WHERE id = $1`
	g, err := scanGym(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(op, err)
	}
	return g, nil
}

// ListGyms возвращает все залы, новые первыми.
func (s *Storage) ListGyms(ctx context.Context) ([]*models.Gym, error) {
	const op = "storage.ListGyms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + gymColumns + ` FROM gyms ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Gym
	for rows.Next() {
		g, err := scanGym(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateGymSubscription записывает назначенный план и вычисленное окно
// подписки, снимая флаг триала.
func (s *Storage) UpdateGymSubscription(ctx context.Context, gymID, planID int64, start, end time.Time) error {
	const op = "storage.UpdateGymSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE gyms
			  SET subscription_plan_id = $1, subscription_start_date = $2,
			      subscription_end_date = $3, is_trial = FALSE, updated_at = NOW()
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, planID, start, end, gymID)
	if err != nil {
		return translateError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeactivateGym переводит зал в неактивное состояние. Обратного перехода
// этот метод не делает.
func (s *Storage) DeactivateGym(ctx context.Context, gymID int64) error {
	const op = "storage.DeactivateGym"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE gyms SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GymStatistics агрегирует показатели зала: количество клиентов, доходы,
// расходы и прибыль. Суммы считаются на стороне базы.
func (s *Storage) GymStatistics(ctx context.Context, gymID int64) (*models.GymStatistics, error) {
	const op = "storage.GymStatistics"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var clientsCount int
	var income, expenses decimal.Decimal
	query := `SELECT
			      (SELECT COUNT(*) FROM clients WHERE gym_id = $1),
			      (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE gym_id = $1),
			      (SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE gym_id = $1)`
	if err := s.DB.QueryRowContext(ctx, query, gymID).Scan(&clientsCount, &income, &expenses); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.GymStatistics{
		ClientsCount:  clientsCount,
		TotalIncome:   income.String(),
		TotalExpenses: expenses.String(),
		Profit:        income.Sub(expenses).String(),
	}, nil
}
