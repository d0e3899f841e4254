package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/DjordjeVuckovic/storefront/internal/apperr"
	mw "github.com/DjordjeVuckovic/storefront/pkg/middleware"
	pkgserver "github.com/DjordjeVuckovic/storefront/pkg/server"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
	healthCheckTimeout      = 2 * time.Second
)

type Server struct {
	Echo *echo.Echo

	cfg           *Config
	healthChecker pkgserver.HealthChecker
	ctx           context.Context
	stop          context.CancelFunc
}

func New(cfg *Config, healthChecker pkgserver.HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.DisableHTTP2 = !cfg.UseHttp2

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &Server{
		Echo:          e,
		cfg:           cfg,
		healthChecker: healthChecker,
		ctx:           ctx,
		stop:          stop,
	}
}

func (s *Server) SetupMiddlewares() *Server {
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
	return s
}

func (s *Server) SetupErrorHandler() *Server {
	s.Echo.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return s
}

// SetupHealthChecks answers 200 while the health checker reports healthy, 503 otherwise
func (s *Server) SetupHealthChecks(path string) *Server {
	s.Echo.GET(path, func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		if !s.healthChecker.Healthy(ctx) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	return s
}

// Context is cancelled when the process receives a shutdown signal
func (s *Server) Context() context.Context {
	return s.ctx
}

func (s *Server) ShutdownSignal() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Server) Start() error {
	defer s.stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", s.cfg.Port, "http2", s.cfg.UseHttp2)
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-s.ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	slog.Info("Shutting down server")
	return s.Echo.Shutdown(ctx)
}
