// Package invoicemaker предоставляет маршруты для основного приложения.
package invoicemaker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/auth/login"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/auth/register"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/dashboard/summary"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/health"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/invoice/create"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/invoice/list"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/invoice/pdf"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/invoice/read"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/invoice/share"
	"github.com/mkotelnikovv/invoice-maker/internal/http/handlers/plan/status"
	"github.com/mkotelnikovv/invoice-maker/internal/http/middlewarectx"
	"github.com/mkotelnikovv/invoice-maker/internal/http/pages"
	"github.com/mkotelnikovv/invoice-maker/internal/identity"
	invoiceservice "github.com/mkotelnikovv/invoice-maker/internal/services/invoice"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, identityService *identity.Service, invoiceService *invoiceservice.Service, pagesHandler *pages.Handler, companyName string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, identityService).ServeHTTP)
		r.Post("/login", login.New(logger, identityService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(identityService.Tokens(), logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/invoices", list.New(logger, invoiceService).ServeHTTP)
			r.Get("/invoices/{id}", read.New(logger, invoiceService).ServeHTTP)
			r.Get("/invoices/{id}/pdf", pdf.New(logger, invoiceService, companyName).ServeHTTP)
			r.Get("/invoices/{id}/share", share.New(logger, invoiceService).ServeHTTP)
			r.Get("/dashboard/summary", summary.New(logger, invoiceService).ServeHTTP)
			r.Get("/plan/status", status.New(logger, identityService).ServeHTTP)

			// Создание счетов закрыто шлюзом тарифного плана
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.PlanGateMiddleware(logger, identityService))
				r.Post("/invoices", create.New(logger, invoiceService).ServeHTTP)
			})
		})
	})

	// Маркетинговые страницы
	r.Get("/", pagesHandler.Home)
	r.Get("/about", pagesHandler.About)
	r.Get("/services", pagesHandler.Services)
	r.Get("/contact", pagesHandler.Contact)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
