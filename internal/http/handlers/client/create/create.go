// Package create реализует HTTP-обработчик добавления клиента зала.
//
// Администратору зала клиент привязывается к его залу из claims,
// суперпользователь указывает зал в теле запроса.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	"github.com/fit-control/fit-control/internal/http/response"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

// Handler обрабатывает запросы на добавление клиента.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления клиента.
type Service interface {
	Create(ctx context.Context, gymID int64, req models.DummyClient) (int64, error)
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
// @Summary Добавить клиента
// @Description Создает клиента в зале текущего администратора.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param request body models.DummyClient true "Данные клиента"
// @Success 200 {object} map[string]any "Клиент создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Телефон уже зарегистрирован в зале"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /clients [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyClient
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

	gymID, ok := middlewarectx.GymIDFromContext(r.Context())
	if !ok {
		log.Error("gym id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	if gymID == repository.AllGyms {
		gymID = req.GymID
	}
	if gymID == 0 {
		log.Error("gym id is required")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field gym_id is a required field"))
		return
	}

	id, err := h.service.Create(r.Context(), gymID, req)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			log.Error("phone already registered", slog.String("phone", req.Phone))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("phone already registered in this gym"))
			return
		}
		log.Error("failed to create client", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create client"))
		return
	}

	log.Info("client created", slog.Int64("id", id), slog.Int64("gym_id", gymID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"client_id": id,
	}))
}
