package models

// User сотрудник платформы: суперпользователь или администратор зала.
// Для суперпользователя GymID равен nil.
type User struct {
	UID              string  `json:"uid"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	PasswordHash     string  `json:"-"`
	Role             string  `json:"role"`
	GymID            *int64  `json:"gym_id,omitempty"`
	TelegramID       *int64  `json:"telegram_id,omitempty"`
	TelegramUsername *string `json:"telegram_username,omitempty"`
}

// DummyLogin данные запроса входа.
type DummyLogin struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required"`
}

// DummyAdminUser данные создания администратора зала суперпользователем.
type DummyAdminUser struct {
	GymID    int64  `json:"gym_id" validate:"required"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email"`
}
