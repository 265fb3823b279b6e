// Package app wires the storefront's dependencies and runs the HTTP server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dulcecodigo/storefront/internal/api"
	"github.com/dulcecodigo/storefront/internal/domain/auth"
	"github.com/dulcecodigo/storefront/internal/domain/order"
	"github.com/dulcecodigo/storefront/internal/notify"
	"github.com/dulcecodigo/storefront/internal/storage/postgres"
	"github.com/dulcecodigo/storefront/pkg/health"
	"github.com/dulcecodigo/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Health probes.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// Repositories.
	orderRepo := postgres.NewOrderRepository(pool)
	loyaltyRepo := postgres.NewLoyaltyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Notifications: email when a provider is configured, logging as the
	// fallback path either way.
	var dispatcher notify.Dispatcher = notify.LogDispatcher{}
	if cfg.Email.BaseURL != "" {
		dispatcher = notify.Fallback{
			Primary: notify.NewEmailDispatcher(notify.EmailConfig{
				BaseURL: cfg.Email.BaseURL,
				APIKey:  cfg.Email.APIKey,
				From:    cfg.Email.From,
				Timeout: cfg.Email.Timeout,
			}),
			Secondary: notify.LogDispatcher{},
		}
	}

	// Domain services + HTTP handlers.
	orderService := order.NewService(orderRepo, loyaltyRepo, userRepo, dispatcher, cfg.NotifyTimeout)
	tokens := auth.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)
	handler := api.NewHandler(
		orderService, orderRepo, productRepo, reviewRepo,
		userRepo, loyaltyRepo, adminRepo, analyticsRepo, tokens,
	)

	router := chi.NewRouter()
	router.Get("/livez", healthSvc.LiveEndpoint)
	router.Get("/readyz", healthSvc.ReadyEndpoint)
	router.Mount("/api", handler.Routes())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(router,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				AllowHeaders: []string{"Content-Type", "Authorization"},
				MaxAge:       86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.LogRequests(zctx.From(ctx)),
		),
	}

	healthSvc.SetReady(true)

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
