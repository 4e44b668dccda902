package repository

import (
	"context"
	"fmt"

	"github.com/fit-control/fit-control/internal/models"
)

const expenseColumns = `id, gym_id, category, amount, description, expense_date, created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var e models.Expense
	if err := row.Scan(&e.ID, &e.GymID, &e.Category, &e.Amount, &e.Description,
		&e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateExpense вставляет новый расход и возвращает его ID.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (int64, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (gym_id, category, amount, description, expense_date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		expense.GymID, expense.Category, expense.Amount, expense.Description,
		expense.ExpenseDate).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ListExpenses возвращает расходы зала с пагинацией, новые первыми.
func (s *Storage) ListExpenses(ctx context.Context, gymID int64, limit, offset int) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + expenseColumns + `
			  FROM expenses
			  WHERE ($1 = 0 OR gym_id = $1)
			  ORDER BY expense_date DESC, created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, gymID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateExpense обновляет расход в пределах зала и возвращает количество
// изменённых строк. Чужой зал или несуществующая запись дает ErrNotFound.
func (s *Storage) UpdateExpense(ctx context.Context, gymID, id int64, expense models.Expense) (int, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE expenses
			  SET category = $1, amount = $2, description = $3, expense_date = $4, updated_at = NOW()
			  WHERE id = $5 AND ($6 = 0 OR gym_id = $6)`
	result, err := s.DB.ExecContext(ctx, query,
		expense.Category, expense.Amount, expense.Description, expense.ExpenseDate, id, gymID)
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

// RemoveExpense удаляет расход в пределах зала и возвращает количество
// удалённых строк. Чужой зал или несуществующая запись дает ErrNotFound.
func (s *Storage) RemoveExpense(ctx context.Context, gymID, id int64) (int, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM expenses WHERE id = $1 AND ($2 = 0 OR gym_id = $2)`
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
