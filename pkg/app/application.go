package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"classbook/pkg/config"
	"classbook/pkg/middleware"
)

// Application owns the HTTP server lifecycle: middleware chain, listen, and
// signal-driven graceful shutdown.
type Application struct {
	cfg    *config.Config
	server *http.Server
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetHandler wraps the router with the middleware chain. Recovery sits
// outermost so panics in the other middleware are still caught.
func (a *Application) SetHandler(handler http.Handler) {
	handler = middleware.CORS(handler)
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}
}

func (a *Application) Run() {
	if a.server == nil {
		a.cfg.Log.Fatal("Application handler not configured")
	}

	go func() {
		a.cfg.Log.Info("HTTP server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.cfg.Log.Info("Shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Graceful shutdown failed", "error", err)
		return
	}
	a.cfg.Log.Info("Server stopped")
}
