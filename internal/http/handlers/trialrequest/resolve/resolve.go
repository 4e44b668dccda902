// Package resolve реализует HTTP-обработчик рассмотрения заявки на пробный
// период. Одобрение заявки создает зал с пробным периодом.
package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fit-control/fit-control/internal/http/response"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// Request — структура входных данных рассмотрения заявки.
type Request struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	AdminNotes string `json:"admin_notes"`
}

// Handler обрабатывает запросы на рассмотрение заявок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики рассмотрения заявок.
type Service interface {
	ApproveTrialRequest(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error)
	RejectTrialRequest(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error)
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
// @Summary Рассмотреть заявку на пробный период
// @Description Одобряет или отклоняет заявку. При одобрении создается зал.
// @Tags TrialRequests
// @Accept  json
// @Produce  json
// @Param id path int true "ID заявки"
// @Param request body Request true "Решение по заявке"
// @Success 200 {object} map[string]any "Заявка рассмотрена"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 409 {object} response.ErrorResponse "Заявка уже решена"
// @Router /admin/trial-requests/{id}/resolve [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trialrequest.resolve"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
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

	var res *models.TrialRequest
	if req.Action == "approve" {
		res, err = h.service.ApproveTrialRequest(r.Context(), id, req.AdminNotes)
	} else {
		res, err = h.service.RejectTrialRequest(r.Context(), id, req.AdminNotes)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("trial request not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("trial request not found"))
			return
		}
		if errors.Is(err, repository.ErrConflict) {
			log.Error("trial request already resolved", slog.Int64("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("trial request already resolved"))
			return
		}
		log.Error("failed to resolve trial request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resolve trial request"))
		return
	}

	log.Info("trial request resolved",
		slog.Int64("id", id), slog.String("action", req.Action))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"trial_request": res,
	}))
}
