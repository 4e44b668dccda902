package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment платеж клиента. Сумма хранится как decimal, чтобы не накапливать
// ошибку округления при агрегации.
type Payment struct {
	ID          int64           `json:"id"`
	GymID       int64           `json:"gym_id"`
	ClientID    int64           `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
// Дата приходит строкой в формате 02-01-2006, пустая строка — сегодня.
type DummyPayment struct {
	GymID       int64  `json:"gym_id"`
	ClientID    int64  `json:"client_id" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	PaymentDate string `json:"payment_date"`
	Notes       string `json:"notes"`
}
