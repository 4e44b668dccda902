// Package status реализует HTTP-обработчик статуса подписки зала.
package status

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
	gymservice "github.com/fit-control/fit-control/internal/services/gym"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// Handler обрабатывает запросы статуса подписки зала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики статуса подписки.
type Service interface {
	SubscriptionStatus(ctx context.Context, gymID int64) (*gymservice.StatusInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статус подписки зала
// @Description Возвращает текущий статус подписки: trial, active или expired.
// @Tags Gyms
// @Produce  json
// @Success 200 {object} map[string]any "Статус подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Зал не найден"
// @Router /gym/subscription [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gym.status"

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

	info, err := h.service.SubscriptionStatus(r.Context(), gymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("gym not found", slog.Int64("gym_id", gymID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("gym not found"))
			return
		}
		log.Error("failed to read subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription status"))
		return
	}

	log.Info("subscription status read",
		slog.Int64("gym_id", gymID), slog.String("status", string(info.Status)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": info,
	}))
}
