// Package list реализует HTTP-обработчик списка счетов текущего пользователя.
//
// Счета отдаются новыми первыми; суммы и порядок строк — как были сохранены.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mkotelnikovv/invoice-maker/internal/http/middlewarectx"
	"github.com/mkotelnikovv/invoice-maker/internal/http/response"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
)

// Handler управляет HTTP-запросами на получение списка счетов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики счетов
}

// Service описывает интерфейс бизнес-логики списка счетов.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Invoice, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// invoiceView — представление счета в JSON-ответе.
type invoiceView struct {
	ID           string            `json:"id"`
	InvoiceNo    string            `json:"invoice_no"`
	CustomerName string            `json:"customer_name"`
	Items        []models.LineItem `json:"items"`
	Total        float64           `json:"total"`
	Paid         bool              `json:"paid"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ServeHTTP godoc
// @Summary Список счетов
// @Description Возвращает все счета текущего пользователя, новые первыми.
// @Tags Invoices
// @Produce  json
// @Success 200 {object} map[string]any "Список счетов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при получении списка"
// @Router /invoices [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.list"
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

	invoices, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list invoices", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list invoices"))
		return
	}

	views := make([]invoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, invoiceView{
			ID:           inv.ID,
			InvoiceNo:    inv.InvoiceNo,
			CustomerName: inv.CustomerName,
			Items:        inv.Items,
			Total:        inv.Total,
			Paid:         inv.Paid,
			CreatedAt:    inv.CreatedAt,
		})
	}

	log.Info("success to list invoices", slog.Int("count", len(views)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"invoices": views,
	}))
}
