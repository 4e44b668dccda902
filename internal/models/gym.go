// Package models содержит доменные структуры платформы fit-control,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Gym представляет собой зал — арендатора платформы. Все бизнес-данные
// (клиенты, платежи, расходы) принадлежат ровно одному залу.
// Даты триала и подписки могут быть nil — это означает, что соответствующий
// период не назначался.
type Gym struct {
	ID                    int64      `json:"id"`
	Name                  string     `json:"name"`
	Address               string     `json:"address"`
	Phone                 string     `json:"phone"`
	Email                 string     `json:"email"`
	IsActive              bool       `json:"is_active"`
	SubscriptionPlanID    *int64     `json:"subscription_plan_id,omitempty"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty"`
	IsTrial               bool       `json:"is_trial"`
	TrialStartDate        *time.Time `json:"trial_start_date,omitempty"`
	TrialEndDate          *time.Time `json:"trial_end_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// DummyGym используется для приёма данных регистрации зала из JSON-запроса.
type DummyGym struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// DummyGymRegistration данные публичной саморегистрации зала с лендинга:
// зал плюс учетная запись администратора.
type DummyGymRegistration struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// GymStatistics агрегированные показатели зала.
type GymStatistics struct {
	ClientsCount  int    `json:"clients_count"`
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	Profit        string `json:"profit"`
}
