// Package repository реализует хранилище данных на основе PostgreSQL
// для платформы fit-control. Предоставляет методы создания, чтения,
// обновления и удаления залов, клиентов, платежей, расходов, планов,
// токенов привязки и сотрудников. Все методы, работающие с данными
// зала, принимают явный gymID: область видимости арендатора никогда
// не выводится из глобального контекста.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Сигнальные ошибки хранилища. Обработчики транслируют их в HTTP-статусы.
var (
	// ErrNotFound запись не существует либо принадлежит другому залу.
	ErrNotFound = errors.New("not found")
	// ErrConflict нарушение уникальности: телефон в пределах зала,
	// имя пользователя, токен привязки.
	ErrConflict = errors.New("already exists")
)

// AllGyms значение gymID, снимающее фильтр по залу. Доступно только
// суперпользователю.
const AllGyms int64 = 0

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'gyms'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table gyms missing or query error: %w", err)
	}
	return nil
}

// translateError приводит ошибки драйвера к сигнальным ошибкам хранилища.
func translateError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
