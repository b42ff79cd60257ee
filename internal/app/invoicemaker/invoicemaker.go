package invoicemaker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/mkotelnikovv/invoice-maker/internal/cache"
	"github.com/mkotelnikovv/invoice-maker/internal/config"
	"github.com/mkotelnikovv/invoice-maker/internal/docstore/postgres"
	"github.com/mkotelnikovv/invoice-maker/internal/http/pages"
	"github.com/mkotelnikovv/invoice-maker/internal/identity"
	jwtlib "github.com/mkotelnikovv/invoice-maker/internal/lib/jwt"
	"github.com/mkotelnikovv/invoice-maker/internal/migrations"
	invoiceservice "github.com/mkotelnikovv/invoice-maker/internal/services/invoice"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *postgres.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	tokens := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	identityService := identity.New(db, tokens, logger, cfg.TrialDays)
	invoiceService := invoiceservice.New(db, cacheRedis, logger)

	pagesHandler, err := pages.New(logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	RegisterRoutes(router, logger, identityService, invoiceService, pagesHandler, cfg.CompanyName)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		return err
	}
}
