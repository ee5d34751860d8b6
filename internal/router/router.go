package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workday-web/internal/config"
	"workday-web/internal/handler"
	"workday-web/internal/middleware"
)

// Handlers bundles every page handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Dashboard  *handler.DashboardHandler
	Journey    *handler.JourneyHandler
	Production *handler.ProductionHandler
	Vacation   *handler.VacationHandler
	Payroll    *handler.PayrollHandler
	Approvals  *handler.ApprovalsHandler
	Goals      *handler.GoalsHandler
	TimeBank   *handler.TimeBankHandler
	Profile    *handler.ProfileHandler
	Reports    *handler.ReportsHandler
	Admin      *handler.AdminHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.LoginRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/login", h.Auth.LoginForm)
	r.Post("/login", h.Auth.Login)
	r.Get("/logout", h.Auth.Logout)

	r.Group(func(pages chi.Router) {
		pages.Use(authMiddleware.RequireSession)

		pages.Get("/", h.Dashboard.Show)

		pages.Get("/jornada", h.Journey.Show)
		pages.Post("/jornada", h.Journey.Create)
		pages.Get("/producao", h.Production.Show)
		pages.Post("/producao", h.Production.Create)
		pages.Get("/ferias", h.Vacation.Show)
		pages.Post("/ferias", h.Vacation.Create)
		pages.Get("/folha", h.Payroll.Show)
		pages.Post("/folha", h.Payroll.Create)

		pages.Get("/aprovacoes", h.Approvals.Show)
		pages.Post("/aprovacoes/{id}/aprovar", h.Approvals.Approve)
		pages.Post("/aprovacoes/{id}/rejeitar", h.Approvals.Reject)

		pages.Get("/metas", h.Goals.Show)
		pages.Get("/banco-horas", h.TimeBank.Show)
		pages.Get("/perfil", h.Profile.Show)
		pages.Get("/relatorios", h.Reports.Show)

		pages.Get("/admin", h.Admin.Show)
		pages.Post("/admin/usuarios", h.Admin.CreateUser)
	})

	return r
}
