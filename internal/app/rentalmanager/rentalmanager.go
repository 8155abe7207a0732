// Package rentalmanager собирает приложение сервиса управления арендой:
// строит зависимости, регистрирует маршруты и управляет жизненным циклом
// HTTP-сервера.
package rentalmanager

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/rental-manager/internal/cache"
	"github.com/magabrotheeeer/rental-manager/internal/config"
	"github.com/magabrotheeeer/rental-manager/internal/lib/clock"
	"github.com/magabrotheeeer/rental-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/rental-manager/internal/migrations"
	authservice "github.com/magabrotheeeer/rental-manager/internal/services/auth"
	leaseservice "github.com/magabrotheeeer/rental-manager/internal/services/lease"
	maintenanceservice "github.com/magabrotheeeer/rental-manager/internal/services/maintenance"
	paymentservice "github.com/magabrotheeeer/rental-manager/internal/services/payment"
	propertyservice "github.com/magabrotheeeer/rental-manager/internal/services/property"
	tenantservice "github.com/magabrotheeeer/rental-manager/internal/services/tenant"
	"github.com/magabrotheeeer/rental-manager/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	clk := clock.Real{}

	authService := authservice.NewAuthService(db, jwtMaker)
	propertyService := propertyservice.NewPropertyService(db, cacheRedis, logger)
	tenantService := tenantservice.NewTenantService(db, logger)
	leaseService := leaseservice.NewLeaseService(db, clk, logger)
	paymentService := paymentservice.NewPaymentService(db, cacheRedis, clk, logger)
	maintenanceService := maintenanceservice.NewMaintenanceService(db, clk, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger,
		authService, propertyService, tenantService,
		leaseService, paymentService, maintenanceService)

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
		cache:  cacheRedis,
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
		a.db.DB.Close()
		return err
	}
}
