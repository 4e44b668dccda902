// Package qrcode реализует HTTP-обработчик выдачи токена привязки зала.
//
// Возвращает токен и deep link для Telegram-бота. Ссылку фронтенд
// кодирует в QR-код, который сканируют администраторы зала.
package qrcode

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
	"github.com/fit-control/fit-control/internal/services/pairing"
)

// Handler обрабатывает запросы на выдачу токена привязки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики привязки.
type Service interface {
	GetOrCreateToken(ctx context.Context, gymID int64) (*models.PairingToken, error)
	PairingURL(token string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Токен привязки Telegram-бота
// @Description Возвращает токен привязки зала и deep link для бота.
// @Tags Pairing
// @Produce  json
// @Success 200 {object} map[string]any "Токен и ссылка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /gym/qrcode [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gym.qrcode"

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

	token, err := h.service.GetOrCreateToken(r.Context(), gymID)
	if err != nil {
		log.Error("failed to get pairing token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get pairing token"))
		return
	}

	url, err := h.service.PairingURL(token.Token)
	if err != nil {
		if errors.Is(err, pairing.ErrBotNotConfigured) {
			log.Error("telegram bot username is not configured")
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("telegram bot is not configured"))
			return
		}
		log.Error("failed to build pairing url", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build pairing url"))
		return
	}

	log.Info("pairing token issued", slog.Int64("gym_id", gymID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token.Token,
		"url":   url,
	}))
}
