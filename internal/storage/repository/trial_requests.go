package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fit-control/fit-control/internal/models"
)

const trialRequestColumns = `id, name, phone, status, admin_notes, gym_id, created_at, updated_at`

func scanTrialRequest(row interface{ Scan(...any) error }) (*models.TrialRequest, error) {
	var r models.TrialRequest
	var gymID sql.NullInt64
	if err := row.Scan(&r.ID, &r.Name, &r.Phone, &r.Status, &r.AdminNotes,
		&gymID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if gymID.Valid {
		r.GymID = &gymID.Int64
	}
	return &r, nil
}

// CreateTrialRequest сохраняет заявку на триал и возвращает её ID.
func (s *Storage) CreateTrialRequest(ctx context.Context, req models.TrialRequest) (int64, error) {
	const op = "storage.CreateTrialRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trial_requests (name, phone, status)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query, req.Name, req.Phone, models.TrialRequestPending).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ReadTrialRequest возвращает заявку по ID.
func (s *Storage) ReadTrialRequest(ctx context.Context, id int64) (*models.TrialRequest, error) {
	const op = "storage.ReadTrialRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + trialRequestColumns + ` FROM trial_requests WHERE id = $1`
	r, err := scanTrialRequest(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(op, err)
	}
	return r, nil
}

// ListTrialRequests возвращает заявки, новые первыми.
func (s *Storage) ListTrialRequests(ctx context.Context) ([]*models.TrialRequest, error) {
	const op = "storage.ListTrialRequests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + trialRequestColumns + ` FROM trial_requests ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.TrialRequest
	for rows.Next() {
		r, err := scanTrialRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ResolveTrialRequest записывает решение по заявке и, при одобрении,
// ссылку на созданный зал. Решение принимается только по заявкам в
// статусе pending: ноль изменённых строк означает, что заявка уже
// решена, и дает ErrConflict.
func (s *Storage) ResolveTrialRequest(ctx context.Context, id int64, status, adminNotes string, gymID *int64) error {
	const op = "storage.ResolveTrialRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trial_requests
			  SET status = $1, admin_notes = $2, gym_id = $3, updated_at = NOW()
			  WHERE id = $4 AND status = $5`
	result, err := s.DB.ExecContext(ctx, query, status, adminNotes, gymID, id, models.TrialRequestPending)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return nil
}
