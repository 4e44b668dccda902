package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fit-control/fit-control/internal/models"
)

// RegisterUser сохраняет нового сотрудника и возвращает его UID.
// Повторное имя пользователя дает ErrConflict.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (uid, username, email, password_hash, role, gym_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Username, user.Email, user.PasswordHash, user.Role,
		user.GymID).Scan(&newID); err != nil {
		return "", translateError(op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает сотрудника по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, role, gym_id,
			      telegram_id, telegram_username
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var gymID, tgID sql.NullInt64
	var tgUsername sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Role, &gymID, &tgID, &tgUsername); err != nil {
		return nil, translateError(op, err)
	}

	if gymID.Valid {
		u.GymID = &gymID.Int64
	}
	if tgID.Valid {
		u.TelegramID = &tgID.Int64
	}
	if tgUsername.Valid {
		u.TelegramUsername = &tgUsername.String
	}
	return u, nil
}
