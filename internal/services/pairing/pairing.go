// Package pairing реализует выдачу и проверку токенов привязки зала.
//
// Токен — непрозрачная строка, один на зал, выдаваемая лениво при первом
// запросе и никогда не ротируемая. По токену строится deep-link в
// telegram-бота, через который клиенты регистрируются в зале.
package pairing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fit-control/fit-control/internal/lib/pairtoken"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/models"
)

// Ошибки сервиса привязки.
var (
	// ErrEmptyToken пустой токен, отклоняется до похода в хранилище.
	ErrEmptyToken = errors.New("empty pairing token")
	// ErrBotNotConfigured имя бота не задано в конфигурации,
	// построить deep-link невозможно.
	ErrBotNotConfigured = errors.New("telegram bot username is not configured")
)

// TokenRepository определяет методы работы с токенами привязки в хранилище.
type TokenRepository interface {
	// GetOrCreatePairingToken возвращает токен зала, создавая его при отсутствии.
	GetOrCreatePairingToken(ctx context.Context, gymID int64, freshToken string) (*models.PairingToken, error)
	// FindGymByPairingToken возвращает зал по токену.
	FindGymByPairingToken(ctx context.Context, token string) (*models.PairingInfo, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует выдачу и проверку токенов привязки.
type Service struct {
	repo        TokenRepository
	cache       Cache
	botUsername string
	log         *slog.Logger
}

// New создает новый Service.
func New(repo TokenRepository, cache Cache, botUsername string, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		cache:       cache,
		botUsername: botUsername,
		log:         log,
	}
}

// GetOrCreateToken возвращает токен привязки зала. Повторные вызовы
// отдают один и тот же токен.
func (s *Service) GetOrCreateToken(ctx context.Context, gymID int64) (*models.PairingToken, error) {
	fresh, err := pairtoken.New()
	if err != nil {
		return nil, err
	}
	return s.repo.GetOrCreatePairingToken(ctx, gymID, fresh)
}

// PairingURL строит deep-link в telegram-бота с токеном в start-параметре.
func (s *Service) PairingURL(token string) (string, error) {
	if s.botUsername == "" {
		return "", ErrBotNotConfigured
	}
	return fmt.Sprintf("https://t.me/%s?start=%s", s.botUsername, token), nil
}

// Verify проверяет токен и возвращает зал, к которому он привязан.
// Пустой токен — ErrEmptyToken, неизвестный — ошибка хранилища ErrNotFound.
func (s *Service) Verify(ctx context.Context, token string) (*models.PairingInfo, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	var cached models.PairingInfo
	cacheKey := "pairing:" + token
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read pairing cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	info, err := s.repo.FindGymByPairingToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, info, time.Hour); err != nil {
		s.log.Warn("failed to cache pairing info", slog.String("key", cacheKey), sl.Err(err))
	}
	return info, nil
}
