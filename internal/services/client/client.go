// Package client содержит бизнес-логику управления клиентами зала.
package client

import (
	"context"
	"log/slog"

	"github.com/fit-control/fit-control/internal/models"
)

// Repository определяет методы работы с клиентами в хранилище.
// Каждый метод принимает явный gymID; repository.AllGyms снимает фильтр
// и доступен только суперпользователю.
type Repository interface {
	CreateClient(ctx context.Context, client models.Client) (int64, error)
	ReadClient(ctx context.Context, gymID, id int64) (*models.Client, error)
	ListClients(ctx context.Context, gymID int64, limit, offset int) ([]*models.Client, error)
	SearchClients(ctx context.Context, gymID int64, term string, limit, offset int) ([]*models.Client, error)
	UpdateClient(ctx context.Context, gymID, id int64, client models.Client) (int, error)
	RemoveClient(ctx context.Context, gymID, id int64) (int, error)
}

// Service реализует бизнес-логику работы с клиентами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает клиента в зале gymID. Дубликат телефона в пределах зала
// дает ErrConflict из хранилища.
func (s *Service) Create(ctx context.Context, gymID int64, req models.DummyClient) (int64, error) {
	client := models.Client{
		GymID:            gymID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Email:            req.Email,
		TelegramID:       req.TelegramID,
		TelegramUsername: req.TelegramUsername,
		IsActive:         true,
		Notes:            req.Notes,
	}
	id, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		return 0, err
	}
	s.log.Info("created client", slog.Int64("client_id", id), slog.Int64("gym_id", gymID))
	return id, nil
}

// Read возвращает клиента в пределах зала.
func (s *Service) Read(ctx context.Context, gymID, id int64) (*models.Client, error) {
	return s.repo.ReadClient(ctx, gymID, id)
}

// List возвращает клиентов зала с пагинацией.
func (s *Service) List(ctx context.Context, gymID int64, limit, offset int) ([]*models.Client, error) {
	return s.repo.ListClients(ctx, gymID, limit, offset)
}

// Search ищет клиентов зала по имени, фамилии или телефону.
func (s *Service) Search(ctx context.Context, gymID int64, term string, limit, offset int) ([]*models.Client, error) {
	return s.repo.SearchClients(ctx, gymID, term, limit, offset)
}

// Update обновляет клиента и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, gymID, id int64, req models.DummyClient, isActive bool) (int, error) {
	client := models.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		IsActive:  isActive,
		Notes:     req.Notes,
	}
	return s.repo.UpdateClient(ctx, gymID, id, client)
}

// Remove удаляет клиента и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, gymID, id int64) (int, error) {
	return s.repo.RemoveClient(ctx, gymID, id)
}
