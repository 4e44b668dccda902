// Package gym содержит бизнес-логику управления залами: регистрацию,
// пробный период, назначение тарифного плана и статистику.
package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fit-control/fit-control/internal/lib/jwt"
	"github.com/fit-control/fit-control/internal/lib/password"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/metrics"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/storage/repository"
	"github.com/fit-control/fit-control/internal/subscription"
)

// ErrGymInactive попытка назначить план заблокированному залу.
var ErrGymInactive = errors.New("gym is inactive")

// Repository определяет методы хранилища, нужные сервису залов.
type Repository interface {
	CreateGym(ctx context.Context, gym models.Gym) (int64, error)
	ReadGym(ctx context.Context, id int64) (*models.Gym, error)
	ListGyms(ctx context.Context) ([]*models.Gym, error)
	UpdateGymSubscription(ctx context.Context, gymID, planID int64, start, end time.Time) error
	GymStatistics(ctx context.Context, gymID int64) (*models.GymStatistics, error)
	ReadActivePlan(ctx context.Context, id int64) (*models.SubscriptionPlan, error)
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateTrialRequest(ctx context.Context, req models.TrialRequest) (int64, error)
	ReadTrialRequest(ctx context.Context, id int64) (*models.TrialRequest, error)
	ListTrialRequests(ctx context.Context) ([]*models.TrialRequest, error)
	ResolveTrialRequest(ctx context.Context, id int64, status, adminNotes string, gymID *int64) error
}

// TokenIssuer выдает токен привязки зала.
type TokenIssuer interface {
	GetOrCreateToken(ctx context.Context, gymID int64) (*models.PairingToken, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// StatusInfo статус подписки зала для выдачи наружу.
type StatusInfo struct {
	Status              string     `json:"status"`
	IsActive            bool       `json:"is_active"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	TrialEndDate        *time.Time `json:"trial_end_date,omitempty"`
}

// Service реализует бизнес-логику залов.
type Service struct {
	repo            Repository
	tokens          TokenIssuer
	cache           Cache
	trialPeriodDays int
	log             *slog.Logger
}

// New создает новый Service.
func New(repo Repository, tokens TokenIssuer, cache Cache, trialPeriodDays int, log *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		tokens:          tokens,
		cache:           cache,
		trialPeriodDays: trialPeriodDays,
		log:             log,
	}
}

// create заводит зал с запущенным триалом и токеном привязки.
// Триал стартует ровно один раз — при создании.
func (s *Service) create(ctx context.Context, req models.DummyGym) (int64, error) {
	now := time.Now().UTC()
	trialEnd := now.AddDate(0, 0, s.trialPeriodDays)
	gym := models.Gym{
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		IsActive:       true,
		IsTrial:        true,
		TrialStartDate: &now,
		TrialEndDate:   &trialEnd,
	}

	id, err := s.repo.CreateGym(ctx, gym)
	if err != nil {
		return 0, err
	}

	if _, err := s.tokens.GetOrCreateToken(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to issue pairing token: %w", err)
	}

	metrics.GymRegistrationsTotal.Inc()
	s.log.Info("created gym with trial", slog.Int64("gym_id", id),
		slog.Time("trial_end_date", trialEnd))
	return id, nil
}

// Create заводит зал от имени суперпользователя.
func (s *Service) Create(ctx context.Context, req models.DummyGym) (*models.Gym, error) {
	id, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.repo.ReadGym(ctx, id)
}

// Register публичная саморегистрация: зал с триалом плюс учетная запись
// администратора. Имя пользователя проверяется до создания зала, чтобы
// занятое имя не оставляло зал без администратора. Занятое имя дает
// ErrConflict.
func (s *Service) Register(ctx context.Context, req models.DummyGymRegistration) (*models.Gym, error) {
	if _, err := s.repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err := s.create(ctx, models.DummyGym{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.CreateAdmin(ctx, id, req.Username, req.Password, req.Email); err != nil {
		return nil, err
	}
	return s.repo.ReadGym(ctx, id)
}

// CreateAdmin заводит администратора зала.
func (s *Service) CreateAdmin(ctx context.Context, gymID int64, username, rawPassword, email string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         jwt.RoleGymAdmin,
		GymID:        &gymID,
	}
	return s.repo.RegisterUser(ctx, user)
}

// Read возвращает зал по ID.
func (s *Service) Read(ctx context.Context, id int64) (*models.Gym, error) {
	return s.repo.ReadGym(ctx, id)
}

// List возвращает все залы.
func (s *Service) List(ctx context.Context) ([]*models.Gym, error) {
	return s.repo.ListGyms(ctx)
}

// AssignPlan назначает залу тарифный план: ставит дату начала (now, если
// явная не передана), вычисляет дату окончания по типу плана и снимает
// флаг триала. План должен существовать и быть активным, зал — активным.
func (s *Service) AssignPlan(ctx context.Context, gymID, planID int64, start *time.Time) (*models.Gym, error) {
	gym, err := s.repo.ReadGym(ctx, gymID)
	if err != nil {
		return nil, err
	}
	if !gym.IsActive {
		return nil, ErrGymInactive
	}

	plan, err := s.repo.ReadActivePlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	startDate := time.Now().UTC()
	if start != nil {
		startDate = *start
	}
	endDate := subscription.EndDate(plan.PlanType, startDate)

	if err := s.repo.UpdateGymSubscription(ctx, gymID, planID, startDate, endDate); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(statusCacheKey(gymID)); err != nil {
		s.log.Warn("failed to invalidate status cache", slog.Int64("gym_id", gymID), sl.Err(err))
	}

	s.log.Info("assigned subscription plan",
		slog.Int64("gym_id", gymID),
		slog.Int64("plan_id", planID),
		slog.Time("end_date", endDate))
	return s.repo.ReadGym(ctx, gymID)
}

// Statistics возвращает агрегированные показатели зала.
func (s *Service) Statistics(ctx context.Context, gymID int64) (*models.GymStatistics, error) {
	return s.repo.GymStatistics(ctx, gymID)
}

func statusCacheKey(gymID int64) string {
	return fmt.Sprintf("gym:status:%d", gymID)
}

// SubscriptionStatus возвращает статус подписки зала, кешируя результат
// на короткое время.
func (s *Service) SubscriptionStatus(ctx context.Context, gymID int64) (*StatusInfo, error) {
	var cached StatusInfo
	found, err := s.cache.Get(statusCacheKey(gymID), &cached)
	if err != nil {
		s.log.Warn("failed to read status cache", slog.Int64("gym_id", gymID), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	gym, err := s.repo.ReadGym(ctx, gymID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	info := &StatusInfo{
		Status:              string(subscription.Compute(gym, now)),
		IsActive:            subscription.IsActive(gym, now),
		SubscriptionEndDate: gym.SubscriptionEndDate,
		TrialEndDate:        gym.TrialEndDate,
	}
	if err := s.cache.Set(statusCacheKey(gymID), info, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache status", slog.Int64("gym_id", gymID), sl.Err(err))
	}
	return info, nil
}

// CreateTrialRequest сохраняет заявку на триал с лендинга.
func (s *Service) CreateTrialRequest(ctx context.Context, req models.DummyTrialRequest) (int64, error) {
	return s.repo.CreateTrialRequest(ctx, models.TrialRequest{
		Name:  req.Name,
		Phone: req.Phone,
	})
}

// ListTrialRequests возвращает все заявки на триал.
func (s *Service) ListTrialRequests(ctx context.Context) ([]*models.TrialRequest, error) {
	return s.repo.ListTrialRequests(ctx)
}

// ApproveTrialRequest одобряет заявку: создает зал с триалом и токеном
// привязки и связывает его с заявкой. Решение принимается только по
// заявкам в статусе pending, повторное одобрение дает ErrConflict
// и не создает второй зал.
func (s *Service) ApproveTrialRequest(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error) {
	req, err := s.repo.ReadTrialRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.TrialRequestPending {
		return nil, repository.ErrConflict
	}

	gymID, err := s.create(ctx, models.DummyGym{Name: req.Name, Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	if err := s.repo.ResolveTrialRequest(ctx, id, models.TrialRequestApproved, adminNotes, &gymID); err != nil {
		return nil, err
	}
	return s.repo.ReadTrialRequest(ctx, id)
}

// RejectTrialRequest отклоняет заявку. Решение принимается только по
// заявкам в статусе pending, уже решённая заявка дает ErrConflict.
func (s *Service) RejectTrialRequest(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error) {
	req, err := s.repo.ReadTrialRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.TrialRequestPending {
		return nil, repository.ErrConflict
	}

	if err := s.repo.ResolveTrialRequest(ctx, id, models.TrialRequestRejected, adminNotes, nil); err != nil {
		return nil, err
	}
	return s.repo.ReadTrialRequest(ctx, id)
}
