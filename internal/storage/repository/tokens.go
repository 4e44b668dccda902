package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fit-control/fit-control/internal/models"
)

// GetOrCreatePairingToken возвращает токен привязки зала, создавая его при
// первом обращении. Вставка идет через ON CONFLICT DO NOTHING с повторным
// чтением, поэтому гонка двух первых обращений отдаёт обоим один и тот же
// сохранённый токен.
func (s *Storage) GetOrCreatePairingToken(ctx context.Context, gymID int64, freshToken string) (*models.PairingToken, error) {
	const op = "storage.GetOrCreatePairingToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	insert := `INSERT INTO pairing_tokens (gym_id, token)
			   VALUES ($1, $2)
			   ON CONFLICT (gym_id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, insert, gymID, freshToken); err != nil {
		return nil, translateError(op, err)
	}

	query := `SELECT id, gym_id, token, created_at, updated_at
			  FROM pairing_tokens WHERE gym_id = $1`
	var t models.PairingToken
	err := s.DB.QueryRowContext(ctx, query, gymID).
		Scan(&t.ID, &t.GymID, &t.Token, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, translateError(op, err)
	}
	return &t, nil
}

// FindGymByPairingToken возвращает зал, которому принадлежит токен.
func (s *Storage) FindGymByPairingToken(ctx context.Context, token string) (*models.PairingInfo, error) {
	const op = "storage.FindGymByPairingToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT g.id, g.name
			  FROM pairing_tokens t
			  JOIN gyms g ON g.id = t.gym_id
			  WHERE t.token = $1`
	var info models.PairingInfo
	err := s.DB.QueryRowContext(ctx, query, token).Scan(&info.GymID, &info.GymName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &info, nil
}
