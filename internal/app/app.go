package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workday-web/internal/config"
	"workday-web/internal/handler"
	"workday-web/internal/middleware"
	"workday-web/internal/report"
	"workday-web/internal/router"
	"workday-web/internal/session"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type App struct {
	server *http.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	views, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	client := upstream.New(cfg.APIBaseURL, cfg.APITimeout)
	slog.Info("workday api client ready", "base_url", cfg.APIBaseURL)

	store, err := session.NewStore(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(store)

	tracker := report.NewTracker()
	store.OnRemove(tracker.Forget)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:       handler.NewAuthHandler(client, store, views),
		Dashboard:  handler.NewDashboardHandler(client, views),
		Journey:    handler.NewJourneyHandler(client, views),
		Production: handler.NewProductionHandler(client, views),
		Vacation:   handler.NewVacationHandler(client, views),
		Payroll:    handler.NewPayrollHandler(client, views),
		Approvals:  handler.NewApprovalsHandler(client, views),
		Goals:      handler.NewGoalsHandler(client, views),
		TimeBank:   handler.NewTimeBankHandler(client, views),
		Profile:    handler.NewProfileHandler(client, views),
		Reports:    handler.NewReportsHandler(client, views, tracker),
		Admin:      handler.NewAdminHandler(client, views),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
