// Package read реализует HTTP-обработчик получения данных собственного зала.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	"github.com/fit-control/fit-control/internal/http/response"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// Handler обрабатывает запросы на чтение данных зала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения зала.
type Service interface {
	Read(ctx context.Context, id int64) (*models.Gym, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Данные собственного зала
// @Tags Gyms
// @Produce  json
// @Success 200 {object} map[string]any "Данные зала"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Зал не найден"
// @Router /gym [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gym.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	gymID, ok := middlewarectx.GymIDFromContext(r.Context())
	if !ok || gymID == 0 {
		log.Error("gym id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	gym, err := h.service.Read(r.Context(), gymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("gym not found", slog.Int64("gym_id", gymID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("gym not found"))
			return
		}
		log.Error("failed to read gym", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read gym"))
		return
	}

	log.Info("gym read", slog.Int64("gym_id", gymID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"gym": gym,
	}))
}
