// Package verify реализует HTTP-обработчик проверки токена привязки
// Telegram-бота. Используется ботом при обработке deep link /start.
package verify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fit-control/fit-control/internal/http/response"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/services/pairing"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// Handler обрабатывает запросы проверки токена привязки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс проверки токена привязки.
type Service interface {
	Verify(ctx context.Context, token string) (*models.PairingInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проверить токен привязки
// @Description Возвращает зал, которому принадлежит токен привязки.
// @Tags Pairing
// @Produce  json
// @Param token path string true "Токен привязки"
// @Success 200 {object} map[string]any "Токен действителен"
// @Failure 400 {object} response.ErrorResponse "Пустой или некорректный токен"
// @Failure 404 {object} map[string]any "Токен не найден"
// @Router /verify/{token} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pairing.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := chi.URLParam(r, "token")

	info, err := h.service.Verify(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, pairing.ErrEmptyToken):
			log.Error("empty pairing token")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty pairing token"))
		case errors.Is(err, repository.ErrNotFound):
			log.Info("pairing token not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.OKWithData(map[string]any{
				"valid": false,
			}))
		default:
			log.Error("failed to verify pairing token", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not verify token"))
		}
		return
	}

	log.Info("pairing token verified", slog.Int64("gym_id", info.GymID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"valid":    true,
		"gym_id":   info.GymID,
		"gym_name": info.GymName,
	}))
}
