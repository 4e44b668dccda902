package models

import "time"

// PairingToken непрозрачный токен привязки, один на зал.
// Токен выдается один раз и не ротируется.
type PairingToken struct {
	ID        int64     `json:"id"`
	GymID     int64     `json:"gym_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PairingInfo результат успешной проверки токена: зал, к которому он привязан.
type PairingInfo struct {
	GymID   int64  `json:"gym_id"`
	GymName string `json:"gym_name"`
}
