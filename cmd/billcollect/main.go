package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billcollect/billcollect/internal/app"
	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/bills"
	"github.com/billcollect/billcollect/internal/customers"
	"github.com/billcollect/billcollect/internal/dashboard"
	"github.com/billcollect/billcollect/internal/employees"
	"github.com/billcollect/billcollect/internal/expenses"
	"github.com/billcollect/billcollect/internal/observability"
	"github.com/billcollect/billcollect/internal/platform/cache"
	"github.com/billcollect/billcollect/internal/platform/db"
	"github.com/billcollect/billcollect/internal/shared"
	"github.com/billcollect/billcollect/internal/users"
)

const sessionCookie = "billcollect_session"

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	dbpool, err := db.New(ctx, cfg.PGDSN, db.PoolConfig{})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, dbpool, logger); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
	}

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, sessionCookie, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	userService := users.NewService(users.NewRepository(dbpool))
	var resolver auth.Resolver
	switch cfg.ResolvedAuthMode() {
	case app.AuthModeDev:
		logger.Warn("dev identity mode: every anonymous session acts as the development user")
		resolver = auth.NewDevResolver(userService)
	default:
		resolver = auth.NewSessionResolver(userService)
	}
	authHandler := auth.NewHandler(logger, auth.NewService(userService), userService, sessionManager, resolver)

	customersHandler := customers.NewHandler(logger, customers.NewService(customers.NewRepository(dbpool)))
	billsHandler := bills.NewHandler(logger, bills.NewService(bills.NewRepository(dbpool)))
	expensesHandler := expenses.NewHandler(logger, expenses.NewService(expenses.NewRepository(dbpool)))
	employeesHandler := employees.NewHandler(logger, employees.NewService(employees.NewRepository(dbpool)))
	dashboardHandler := dashboard.NewHandler(logger, dashboard.NewService(dashboard.NewRepository(dbpool)))

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		Resolver:       resolver,
		Metrics:        observability.NewMetrics(),
		Readiness: map[string]app.ReadinessCheck{
			"postgres": dbpool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
		AuthHandler:      authHandler,
		CustomersHandler: customersHandler,
		BillsHandler:     billsHandler,
		ExpensesHandler:  expensesHandler,
		EmployeesHandler: employeesHandler,
		DashboardHandler: dashboardHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("auth_mode", cfg.ResolvedAuthMode()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
