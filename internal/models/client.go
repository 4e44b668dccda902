package models

import "time"

// Client посетитель зала. Телефон уникален в пределах одного зала.
// TelegramID и TelegramUsername заполняются при регистрации через бота.
type Client struct {
	ID               int64     `json:"id"`
	GymID            int64     `json:"gym_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	TelegramID       *int64    `json:"telegram_id,omitempty"`
	TelegramUsername *string   `json:"telegram_username,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	IsActive         bool      `json:"is_active"`
	Notes            string    `json:"notes"`
}

// DummyClient используется для приёма данных клиента из JSON-запроса.
// GymID обязателен только для суперпользователя, администратору зала
// он проставляется из claims.
type DummyClient struct {
	GymID            int64   `json:"gym_id"`
	FirstName        string  `json:"first_name" validate:"required"`
	LastName         string  `json:"last_name" validate:"required"`
	Phone            string  `json:"phone" validate:"required"`
	Email            string  `json:"email"`
	TelegramID       *int64  `json:"telegram_id"`
	TelegramUsername *string `json:"telegram_username"`
	Notes            string  `json:"notes"`
}
