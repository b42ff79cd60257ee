// Package create реализует HTTP-обработчик для создания новых счетов пользователя.
//
// Handler принимает JSON-запрос с данными счета, валидирует их, извлекает
// идентификатор пользователя из контекста, вызывает бизнес-логику создания
// счета через сервис и возвращает ID документа и номер счета в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
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

	"github.com/mkotelnikovv/invoice-maker/internal/http/middlewarectx"
	"github.com/mkotelnikovv/invoice-maker/internal/http/response"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
	invoiceservice "github.com/mkotelnikovv/invoice-maker/internal/services/invoice"
)

// Handler управляет HTTP-запросами на создание новых счетов.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания счета,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания счетов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания счета.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyInvoice) (string, string, error)
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
// @Summary Создать новый счет
// @Description Сохраняет новый счет текущего пользователя. Возвращает ID документа и номер счета.
// @Tags Invoices
// @Accept  json
// @Produce  json
// @Param request body models.DummyInvoice true "Данные нового счета"
// @Success 200 {object} map[string]any "Успешное создание счета"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пустой счет"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании счета"
// @Router /invoices [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyInvoice
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, invoiceNo, err := h.service.Create(r.Context(), userUID, req)
	if errors.Is(err, invoiceservice.ErrEmptyInvoice) {
		log.Error("empty invoice", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("please add customer & items"))
		return
	}
	if err != nil {
		log.Error("failed to create invoice", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create invoice"))
		return
	}

	log.Info("success to create invoice", slog.String("id", id), slog.String("invoice_no", invoiceNo))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":         id,
		"invoice_no": invoiceNo,
	}))
}
