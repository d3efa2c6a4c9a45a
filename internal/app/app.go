package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"secureauth/internal/app/deps"
	"secureauth/internal/app/services"
	dl "secureauth/internal/core/domain/logging"
	"secureauth/internal/http/handlers/health"
	"secureauth/internal/http/handlers/home"
	registeraccount "secureauth/internal/http/handlers/register_account"
	resetcredentials "secureauth/internal/http/handlers/reset_credentials"
	"secureauth/internal/http/handlers/response"
	"secureauth/internal/http/middleware"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	deps     *deps.Deps
	server   *http.Server
	listener net.Listener
	lock     sync.Mutex
}

func New(deps *deps.Deps, s *services.Services) *App {
	return &App{
		deps: deps,
		server: &http.Server{
			Handler:           NewRouter(deps, s),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.LogRequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(deps.HTTPMetrics.Handler)

	router.Method(http.MethodGet, "/", home.New(deps.Flashes))
	router.Method(http.MethodPost, "/register", registeraccount.New(s.RegisterAccount, deps.Flashes))
	router.Method(http.MethodPost, "/forgot", resetcredentials.New(s.ResetCredentials, deps.Flashes))
	router.Get("/healthz", health.ServeHTTP)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.NotFound(func(rw http.ResponseWriter, r *http.Request) { response.RenderNotFound(rw) })
	router.MethodNotAllowed(func(rw http.ResponseWriter, r *http.Request) { response.RenderMethodNotAllowed(rw) })
	return router
}

// Start binds the configured address and serves in the background. When the
// port is taken and fallback is enabled, any free port on the host is used.
func (a *App) Start(ctx context.Context) error {
	listener, err := a.listen(ctx)
	if err != nil {
		return err
	}

	a.lock.Lock()
	a.listener = listener
	a.lock.Unlock()

	a.deps.Logger.Info(ctx, "HTTP server has started.", dl.Entry("address", listener.Addr().String()))
	go func() {
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.deps.Logger.Error(context.Background(), "HTTP server failed.", dl.Entry("err", err))
			return
		}
		a.deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}()
	return nil
}

func (a *App) listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig
	address := a.deps.Config.Addr()

	listener, err := lc.Listen(ctx, "tcp", address)
	if err == nil {
		return listener, nil
	}
	if !a.deps.Config.PortFallback || !errors.Is(err, errAddrInUse) {
		return nil, fmt.Errorf("could not listen on %s: %w", address, err)
	}

	a.deps.Logger.Warning(
		ctx,
		"Port is already in use, falling back to a free port.",
		dl.Entry("address", address),
	)
	listener, err = lc.Listen(ctx, "tcp", fmt.Sprintf("%s:0", a.deps.Config.Host))
	if err != nil {
		return nil, fmt.Errorf("could not listen on a free port: %w", err)
	}
	return listener, nil
}

// Addr is the address actually bound by Start.
func (a *App) Addr() string {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
