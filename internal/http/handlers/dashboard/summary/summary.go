// Package summary реализует HTTP-обработчик сводки панели управления:
// количество счетов всего, оплаченных и неоплаченных.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mkotelnikovv/invoice-maker/internal/http/middlewarectx"
	"github.com/mkotelnikovv/invoice-maker/internal/http/response"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
)

// Handler управляет HTTP-запросами на получение сводки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики счетов
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	Summary(ctx context.Context, userUID string) (*models.Summary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка панели управления
// @Description Возвращает количество счетов всего, оплаченных и неоплаченных.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]any "Сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при получении сводки"
// @Router /dashboard/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.summary"
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

	summary, err := h.service.Summary(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get summary"))
		return
	}

	log.Info("success to get summary", slog.Int("total", summary.Total))
	render.JSON(w, r, response.OKWithData(summary))
}
