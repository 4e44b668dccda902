// Package stats реализует HTTP-обработчик сводной статистики зала:
// количество клиентов, суммы платежей и расходов.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	"github.com/fit-control/fit-control/internal/http/response"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/models"
)

// Handler обрабатывает запросы статистики зала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики статистики.
type Service interface {
	Statistics(ctx context.Context, gymID int64) (*models.GymStatistics, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика зала
// @Description Возвращает количество клиентов, суммы платежей и расходов зала.
// @Tags Gyms
// @Produce  json
// @Success 200 {object} map[string]any "Статистика зала"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /gym/statistics [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gym.stats"

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

	stats, err := h.service.Statistics(r.Context(), gymID)
	if err != nil {
		log.Error("failed to read gym statistics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read statistics"))
		return
	}

	log.Info("gym statistics read", slog.Int64("gym_id", gymID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"statistics": stats,
	}))
}
