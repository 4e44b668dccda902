// Package auth содержит логику аутентификации сотрудников платформы.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fit-control/fit-control/internal/lib/jwt"
	"github.com/fit-control/fit-control/internal/lib/password"
	"github.com/fit-control/fit-control/internal/models"
)

// ErrInvalidCredentials неверная пара логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с сотрудниками в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового сотрудника и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает сотрудника по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает сотрудника с хэшированным паролем.
func (s *Service) Register(ctx context.Context, username, rawPassword, email, role string, gymID *int64) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		GymID:        gymID,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль сотрудника и генерирует JWT с ролью и залом в claims.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}

	var gymID int64
	if user.GymID != nil {
		gymID = *user.GymID
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, gymID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает claims сотрудника.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
