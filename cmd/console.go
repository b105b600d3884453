package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myclient/handlers"
	"myclient/service"
	"myclient/ui"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// newConsoleEcho bootstraps the page and builds the console http server over a.
// The returned toaster must be closed when the server stops.
func newConsoleEcho(ctx context.Context, a *app, logger log.Logger) (*echo.Echo, *ui.Toaster, error) {
	ui.Bootstrap(ctx, a.page, a.theme, a.modals, logger)
	if a.session.CheckAuth(ctx) {
		ui.RenderUserInfo(ctx, a.page, a.session, a.formatter)
	}

	toaster := ui.NewToaster(a.page, a.cfg.ToastDuration, logger)
	var consoleServer handlers.ServerInterface
	{
		consoleServer = handlers.NewConsoleServer(handlers.ConsoleDeps{
			Page:       a.page,
			Theme:      a.theme,
			Modals:     a.modals,
			Toaster:    toaster,
			Formatter:  a.formatter,
			Session:    a.session,
			Auth:       a.auth,
			Scenarios:  a.scenarios,
			Devices:    a.devices,
			Tests:      a.tests,
			Jobs:       a.jobs,
			Clock:      a.clock,
			BackendURL: a.client.BaseURL(),
		}, logger)
	}

	var e *echo.Echo
	{
		doc, err := handlers.GetSwagger()
		if err != nil {
			toaster.Close()
			return nil, nil, err
		}
		validator, err := handlers.OpenAPIValidator(doc)
		if err != nil {
			toaster.Close()
			return nil, nil, err
		}
		e = echo.New()
		e.HideBanner = true
		e.Use(validator)
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, consoleServer)
	}
	return e, toaster, nil
}

// serveConsole runs the console until SIGINT or SIGTERM.
func serveConsole(ctx context.Context, a *app, logger log.Logger) error {
	e, toaster, err := newConsoleEcho(ctx, a, logger)
	if err != nil {
		return err
	}
	defer toaster.Close()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	startErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", a.cfg.ConsolePort)
		level.Info(logger).Log("msg", "Starting console", "addr", addr, "api_url", a.cfg.APIURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	select {
	case err := <-startErr:
		level.Error(logger).Log("msg", "HTTP server error", "err", err)
		return fmt.Errorf("start console: %w", err)
	case <-quit:
	}
	level.Info(logger).Log("msg", "Shutting down console...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during console shutdown", "err", err)
		return err
	}
	level.Info(logger).Log("msg", "Console stopped")
	return nil
}
