package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		newHTTPServer,
		func(f repository.Factory) HealthChecker { return f },
	),
	fx.Invoke(registerLifecycle),
)

// FacadeParams lists use cases aggregated by StoreFacade.
type FacadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Users    *usecase.UserUseCase
	Orders   *usecase.OrderUseCase
	Products *usecase.ProductUseCase
	Reviews  *usecase.ReviewUseCase
	Likes    *usecase.LikeUseCase
	Health   HealthChecker
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

// AdminBootstrapper creates the configured administrator account.
type AdminBootstrapper interface {
	EnsureAdmin(ctx context.Context, email, password string, logger *slog.Logger) error
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Auth       *usecase.AuthUseCase
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	appendHooks(p.Lifecycle, p.Shutdowner, p.Logger, p.Server, p.Auth, p.Config)
}

func appendHooks(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, server *http.Server, admins AdminBootstrapper, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := admins.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
				return err
			}
			logger.Info("starting storefront", slog.String("addr", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, cfg.ShutdownTimeout)
			}
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("storefront stopped")
			return nil
		},
	})
}
