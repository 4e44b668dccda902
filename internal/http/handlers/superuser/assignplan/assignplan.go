// Package assignplan реализует HTTP-обработчик назначения тарифного плана залу.
//
// Назначение плана завершает пробный период и устанавливает даты подписки
// по типу плана: месяц, год или бессрочно.
package assignplan

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fit-control/fit-control/internal/http/response"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/models"
	gymservice "github.com/fit-control/fit-control/internal/services/gym"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// Request — структура входных данных назначения плана.
// StartDate в формате 02-01-2006, пустая строка — сегодня.
// Формат даты проверяется через time.Parse, а не тегом валидатора.
type Request struct {
	PlanID    int64  `json:"plan_id" validate:"required"`
	StartDate string `json:"start_date"`
}

// Handler обрабатывает запросы на назначение плана.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики назначения плана.
type Service interface {
	AssignPlan(ctx context.Context, gymID, planID int64, start *time.Time) (*models.Gym, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Назначить тарифный план залу
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID зала"
// @Param request body Request true "План и дата начала"
// @Success 200 {object} map[string]any "План назначен"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Зал отключен"
// @Failure 404 {object} response.ErrorResponse "Зал или план не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/gyms/{id}/plan [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.superuser.assignplan"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	gymID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var start *time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("02-01-2006", req.StartDate)
		if err != nil {
			log.Error("failed to parse start date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid start date"))
			return
		}
		start = &parsed
	}

	gym, err := h.service.AssignPlan(r.Context(), gymID, req.PlanID, start)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Info("gym or plan not found", slog.Int64("gym_id", gymID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("gym or plan not found"))
		case errors.Is(err, gymservice.ErrGymInactive):
			log.Error("gym is inactive", slog.Int64("gym_id", gymID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("gym is inactive"))
		default:
			log.Error("failed to assign plan", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not assign plan"))
		}
		return
	}

	log.Info("plan assigned",
		slog.Int64("gym_id", gymID), slog.Int64("plan_id", req.PlanID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"gym": gym,
	}))
}
