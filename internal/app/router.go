package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/bills"
	"github.com/billcollect/billcollect/internal/customers"
	"github.com/billcollect/billcollect/internal/dashboard"
	"github.com/billcollect/billcollect/internal/employees"
	"github.com/billcollect/billcollect/internal/expenses"
	"github.com/billcollect/billcollect/internal/observability"
	"github.com/billcollect/billcollect/internal/platform/httpx"
	"github.com/billcollect/billcollect/internal/shared"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	Resolver       auth.Resolver
	Metrics        *observability.Metrics
	Readiness      map[string]ReadinessCheck

	AuthHandler      *auth.Handler
	CustomersHandler *customers.Handler
	BillsHandler     *bills.Handler
	ExpensesHandler  *expenses.Handler
	EmployeesHandler *employees.Handler
	DashboardHandler *dashboard.Handler
}

// NewRouter constructs the chi.Router with the API, health and static routes.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readyHandler(logger, params.Readiness))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(params.SessionManager.Middleware(logger))

		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireTenant(params.Resolver, logger))
			r.Route("/customers", params.CustomersHandler.MountRoutes)
			r.Route("/bills", params.BillsHandler.MountRoutes)
			r.Route("/expenses", params.ExpensesHandler.MountRoutes)
			r.Route("/employees", params.EmployeesHandler.MountRoutes)
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "no such endpoint")
		})
	})

	if params.Config != nil && params.Config.StaticDir != "" {
		r.Handle("/*", staticCacheHandler(spaHandler(os.DirFS(params.Config.StaticDir))))
	}

	return r
}

func readyHandler(logger *slog.Logger, checks map[string]ReadinessCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Warn("readiness check failed", slog.String("check", name), slog.Any("error", err))
				result[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}
		httpx.JSON(w, status, result)
	}
}

// spaHandler serves files from root and falls back to index.html for paths
// that do not name a file, so client-side routes load the bundle.
func spaHandler(root fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = "."
		}
		if info, err := fs.Stat(root, name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.ServeFileFS(w, r, root, "index.html")
	})
}

// staticCacheHandler caches bundle assets for an hour. index.html is always
// revalidated so new deployments take effect.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/assets/") {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		next.ServeHTTP(w, r)
	})
}
