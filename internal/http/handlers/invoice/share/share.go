// Package share реализует HTTP-обработчик получения ссылки для отправки
// счета в мессенджер: текстовое резюме счета, URL-кодированное в deep-link.
package share

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
	"github.com/mkotelnikovv/invoice-maker/internal/http/middlewarectx"
	"github.com/mkotelnikovv/invoice-maker/internal/http/response"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
	invoiceservice "github.com/mkotelnikovv/invoice-maker/internal/services/invoice"
)

// Handler управляет HTTP-запросами на получение ссылки отправки счета.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики счетов
}

// Service описывает интерфейс чтения счета для формирования ссылки.
type Service interface {
	Read(ctx context.Context, userUID, id string) (*models.Invoice, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Ссылка для отправки счета
// @Description Возвращает WhatsApp deep-link с текстовым резюме счета.
// @Tags Invoices
// @Produce  json
// @Param id path string true "Идентификатор счета"
// @Success 200 {object} map[string]any "Ссылка и текст сообщения"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Счет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/{id}/share [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.share"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	inv, err := h.service.Read(r.Context(), userUID, id)
	if errors.Is(err, docstore.ErrNotFound) {
		log.Error("invoice not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("invoice not found"))
		return
	}
	if err != nil {
		log.Error("failed to read invoice", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read invoice"))
		return
	}

	log.Info("success to build share link", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"link": invoiceservice.ShareLink(inv),
		"text": invoiceservice.ShareText(inv),
	}))
}
