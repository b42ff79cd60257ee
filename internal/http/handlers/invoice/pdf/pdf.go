// Package pdf реализует HTTP-обработчик генерации PDF документа счета.
//
// Счет читается из хранилища и прогоняется через движок верстки;
// ответ отдается как вложение application/pdf с именем {invoiceNo}.pdf.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
	"github.com/mkotelnikovv/invoice-maker/internal/http/middlewarectx"
	"github.com/mkotelnikovv/invoice-maker/internal/http/response"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
	"github.com/mkotelnikovv/invoice-maker/internal/metrics"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
	"github.com/mkotelnikovv/invoice-maker/internal/pdflayout"
)

// Handler управляет HTTP-запросами на генерацию PDF счета.
type Handler struct {
	log         *slog.Logger // Логгер для записи информации и ошибок
	service     Service      // Сервис бизнес-логики счетов
	companyName string       // Название компании в шапке документа
}

// Service описывает интерфейс чтения счета для генерации PDF.
type Service interface {
	Read(ctx context.Context, userUID, id string) (*models.Invoice, error)
}

// New создает новый Handler с переданными логгером, сервисом и названием компании.
func New(log *slog.Logger, service Service, companyName string) *Handler {
	return &Handler{
		log:         log,
		service:     service,
		companyName: companyName,
	}
}

// ServeHTTP godoc
// @Summary Скачать PDF счета
// @Description Генерирует PDF документ счета и отдает его как вложение.
// @Tags Invoices
// @Produce  application/pdf
// @Param id path string true "Идентификатор счета"
// @Success 200 {file} file "PDF документ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Счет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при генерации PDF"
// @Router /invoices/{id}/pdf [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.pdf"
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

	payload, err := pdflayout.RenderBytes(pdflayout.Params{
		InvoiceNo:    inv.InvoiceNo,
		CustomerName: inv.CustomerName,
		CompanyName:  h.companyName,
		Items:        inv.Items,
		Date:         time.Now(),
	})
	if err != nil {
		log.Error("failed to render pdf", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not render pdf"))
		return
	}
	metrics.PDFRendered.Inc()

	log.Info("success to render pdf", slog.String("id", id), slog.Int("size", len(payload)))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.InvoiceNo+".pdf"))
	_, _ = w.Write(payload)
}
