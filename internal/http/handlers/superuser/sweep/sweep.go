// Package sweep реализует HTTP-обработчик ручного запуска проверки
// подписок залов. Та же проверка выполняется периодически фоновым воркером.
package sweep

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fit-control/fit-control/internal/http/response"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/services/sweeper"
)

// Handler обрабатывает запросы на запуск проверки подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс проверки подписок.
type Service interface {
	Run(ctx context.Context) (sweeper.Result, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проверить подписки залов
// @Description Блокирует залы с истекшей подпиской. Повторный запуск безопасен.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/sweep [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.superuser.sweep"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Run(r.Context())
	if err != nil {
		log.Error("sweep failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("sweep failed"))
		return
	}

	log.Info("sweep finished",
		slog.Int("checked", res.Checked), slog.Int("blocked", res.Blocked))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"checked": res.Checked,
		"blocked": res.Blocked,
	}))
}
