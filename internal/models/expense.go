package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense расход зала.
type Expense struct {
	ID          int64           `json:"id"`
	GymID       int64           `json:"gym_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DummyExpense используется для приёма данных расхода из JSON-запроса.
type DummyExpense struct {
	GymID       int64  `json:"gym_id"`
	Category    string `json:"category" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description"`
	ExpenseDate string `json:"expense_date"`
}
