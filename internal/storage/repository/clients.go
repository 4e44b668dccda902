package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fit-control/fit-control/internal/models"
)

const clientColumns = `id, gym_id, first_name, last_name, phone, email,
			      telegram_id, telegram_username, registration_date, is_active, notes`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	var tgID sql.NullInt64
	var tgUsername sql.NullString
	if err := row.Scan(&c.ID, &c.GymID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
		&tgID, &tgUsername, &c.RegistrationDate, &c.IsActive, &c.Notes); err != nil {
		return nil, err
	}
	if tgID.Valid {
		c.TelegramID = &tgID.Int64
	}
	if tgUsername.Valid {
		c.TelegramUsername = &tgUsername.String
	}
	return &c, nil
}

// CreateClient вставляет нового клиента и возвращает его ID.
// Повторный телефон в пределах зала дает ErrConflict.
func (s *Storage) CreateClient(ctx context.Context, client models.Client) (int64, error) {
	const op = "storage.CreateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO clients (gym_id, first_name, last_name, phone, email,
			      telegram_id, telegram_username, is_active, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		client.GymID, client.FirstName, client.LastName, client.Phone, client.Email,
		client.TelegramID, client.TelegramUsername, client.IsActive, client.Notes).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ReadClient возвращает клиента по ID в пределах зала gymID.
// Чужой зал неотличим от несуществующей записи: и то и другое — ErrNotFound.
func (s *Storage) ReadClient(ctx context.Context, gymID, id int64) (*models.Client, error) {
	const op = "storage.ReadClient"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND ($2 = 0 OR gym_id = $2)`
	c, err := scanClient(s.DB.QueryRowContext(ctx, query, id, gymID))
	if err != nil {
		return nil, translateError(op, err)
	}
	return c, nil
}

// ListClients возвращает клиентов зала с пагинацией, новые первыми.
// gymID = AllGyms снимает фильтр по залу.
func (s *Storage) ListClients(ctx context.Context, gymID int64, limit, offset int) ([]*models.Client, error) {
	const op = "storage.ListClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  WHERE ($1 = 0 OR gym_id = $1)
			  ORDER BY registration_date DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, gymID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SearchClients ищет клиентов зала по имени, фамилии или телефону.
func (s *Storage) SearchClients(ctx context.Context, gymID int64, term string, limit, offset int) ([]*models.Client, error) {
	const op = "storage.SearchClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  WHERE ($1 = 0 OR gym_id = $1)
			    AND (first_name ILIKE $2 OR last_name ILIKE $2 OR phone ILIKE $2)
			  ORDER BY registration_date DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, gymID, "%"+term+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateClient обновляет данные клиента в пределах зала gymID
// и возвращает количество изменённых строк. Чужой зал или
// несуществующая запись дает ErrNotFound.
func (s *Storage) UpdateClient(ctx context.Context, gymID, id int64, client models.Client) (int, error) {
	const op = "storage.UpdateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE clients
			  SET first_name = $1, last_name = $2, phone = $3, email = $4,
			      is_active = $5, notes = $6
			  WHERE id = $7 AND ($8 = 0 OR gym_id = $8)`
	result, err := s.DB.ExecContext(ctx, query,
		client.FirstName, client.LastName, client.Phone, client.Email,
		client.IsActive, client.Notes, id, gymID)
	if err != nil {
		return 0, translateError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return int(rowsAffected), nil
}

// RemoveClient удаляет клиента в пределах зала gymID и возвращает
// количество удалённых строк. Чужой зал или несуществующая запись
// дает ErrNotFound.
func (s *Storage) RemoveClient(ctx context.Context, gymID, id int64) (int, error) {
	const op = "storage.RemoveClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM clients WHERE id = $1 AND ($2 = 0 OR gym_id = $2)`
	result, err := s.DB.ExecContext(ctx, query, id, gymID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return int(rowsAffected), nil
}
