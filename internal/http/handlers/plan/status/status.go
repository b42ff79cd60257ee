// Package status реализует HTTP-обработчик статуса тарифного плана
// текущего пользователя: доступ открыт по подписке, идет пробный период
// или доступ истек.
package status

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
	"github.com/mkotelnikovv/invoice-maker/internal/plangate"
)

// Handler управляет HTTP-запросами на получение статуса плана.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис получения профиля пользователя
}

// Service описывает интерфейс получения профиля пользователя.
type Service interface {
	Profile(ctx context.Context, userUID string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// planView описывает ответ со статусом тарифного плана.
type planView struct {
	Allowed            bool       `json:"allowed"`
	Status             string     `json:"status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
}

// ServeHTTP godoc
// @Summary Статус тарифного плана
// @Description Возвращает, открыт ли доступ к созданию счетов, и срок действия
// пробного периода или подписки.
// @Tags Plan
// @Produce  json
// @Success 200 {object} map[string]any "Статус плана"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при получении статуса"
// @Router /plan/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.status"
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

	user, err := h.service.Profile(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get user profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get plan status"))
		return
	}

	allowed, status := plangate.Evaluate(time.Now(), user.TrialEndsAt, user.SubscriptionEndsAt)

	log.Info("success to get plan status",
		slog.Bool("allowed", allowed),
		slog.String("status", string(status)))
	render.JSON(w, r, response.OKWithData(planView{
		Allowed:            allowed,
		Status:             string(status),
		TrialEndsAt:        user.TrialEndsAt,
		SubscriptionEndsAt: user.SubscriptionEndsAt,
	}))
}
