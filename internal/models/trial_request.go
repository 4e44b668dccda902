package models

import "time"

// Статусы заявок на триал.
const (
	TrialRequestPending  = "pending"
	TrialRequestApproved = "approved"
	TrialRequestRejected = "rejected"
)

// TrialRequest заявка на пробный период с лендинга. После одобрения
// суперпользователем создается зал и заявка ссылается на него.
type TrialRequest struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"admin_notes"`
	GymID      *int64    `json:"gym_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DummyTrialRequest используется для приёма заявки на триал из JSON-запроса.
type DummyTrialRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}
