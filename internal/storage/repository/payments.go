package repository

import (
	"context"
	"fmt"

	"github.com/fit-control/fit-control/internal/models"
)

const paymentColumns = `id, gym_id, client_id, amount, payment_date, notes, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(&p.ID, &p.GymID, &p.ClientID, &p.Amount, &p.PaymentDate,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayment вставляет новый платеж и возвращает его ID. Клиент должен
// принадлежать тому же залу, иначе ErrNotFound.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int64, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1 AND gym_id = $2)`,
		payment.ClientID, payment.GymID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	query := `INSERT INTO payments (gym_id, client_id, amount, payment_date, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err = s.DB.QueryRowContext(ctx, query,
		payment.GymID, payment.ClientID, payment.Amount, payment.PaymentDate, payment.Notes).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ListPayments возвращает платежи зала с пагинацией, новые первыми.
func (s *Storage) ListPayments(ctx context.Context, gymID int64, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payments
			  WHERE ($1 = 0 OR gym_id = $1)
			  ORDER BY payment_date DESC, created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, gymID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
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

// UpdatePayment обновляет сумму, дату и заметки платежа в пределах зала.
// Чужой зал или несуществующая запись дает ErrNotFound.
func (s *Storage) UpdatePayment(ctx context.Context, gymID, id int64, payment models.Payment) (int, error) {
	const op = "storage.UpdatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET amount = $1, payment_date = $2, notes = $3, updated_at = NOW()
			  WHERE id = $4 AND ($5 = 0 OR gym_id = $5)`
	result, err := s.DB.ExecContext(ctx, query,
		payment.Amount, payment.PaymentDate, payment.Notes, id, gymID)
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

// RemovePayment удаляет платеж в пределах зала и возвращает количество
// удалённых строк. Чужой зал или несуществующая запись дает ErrNotFound.
func (s *Storage) RemovePayment(ctx context.Context, gymID, id int64) (int, error) {
	const op = "storage.RemovePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM payments WHERE id = $1 AND ($2 = 0 OR gym_id = $2)`
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
