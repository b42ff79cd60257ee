package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/mkotelnikovv/invoice-maker/internal/http/response"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
	"github.com/mkotelnikovv/invoice-maker/internal/metrics"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
	"github.com/mkotelnikovv/invoice-maker/internal/plangate"
)

// ProfileService определяет интерфейс чтения профиля пользователя.
type ProfileService interface {
	Profile(ctx context.Context, uid string) (*models.User, error)
}

// PlanGateMiddleware создает middleware, разрешающее создание счета только
// пользователям с активным пробным периодом или подпиской. Истекший план —
// ожидаемое состояние, а не ошибка: ответ 403 с текстом баннера.
func PlanGateMiddleware(log *slog.Logger, profiles ProfileService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user, err := profiles.Profile(r.Context(), userUID)
			if err != nil {
				log.Error("failed to load user profile", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			allowed, status := plangate.Evaluate(time.Now(), user.TrialEndsAt, user.SubscriptionEndsAt)
			if !allowed {
				metrics.PlanGateDenied.Inc()
				log.Info("plan expired, invoice creation denied",
					slog.String("user_uid", userUID), slog.String("status", string(status)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("Trial expired. Please upgrade to continue."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
