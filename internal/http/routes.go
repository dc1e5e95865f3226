package httpx

import (
	"log/slog"
	"net/http"

	"github.com/orbitalhq/console-api/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions *service.SessionService
	Tenants  *service.TenantService
	Tickets  *service.TicketService
	Audit    *service.AuditService
	Releases *service.ReleaseService // optional
	Activity *service.ActivityService

	// SessionCookie names the browser cookie carrying the opaque session.
	SessionCookie string
	// DB backs the readiness probe; optional.
	DB Pinger
	// PageSize bounds list pagination across the API.
	PageSize PageSizeConfig
	Logger   *slog.Logger
}

// NewRouter builds the API router. Every /api route sits behind the session
// middleware; probes are open.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{}
	tenantHandlers := &TenantHandlers{Svc: services.Tenants}
	ticketHandlers := &TicketHandlers{Svc: services.Tickets, PageSize: services.PageSize}
	auditHandlers := &AuditHandlers{Svc: services.Audit, PageSize: services.PageSize}
	releaseHandlers := &ReleaseHandlers{Svc: services.Releases}
	activityHandlers := &ActivityHandlers{Svc: services.Activity, PageSize: services.PageSize}
	healthHandlers := &HealthHandlers{DB: services.DB}

	api := http.NewServeMux()
	api.HandleFunc("GET /api/auth/me", authHandlers.Me)
	api.HandleFunc("GET /api/tenants", tenantHandlers.List)
	api.HandleFunc("POST /api/tenants", tenantHandlers.Create)
	api.HandleFunc("DELETE /api/tenants/{id}", tenantHandlers.Delete)
	api.HandleFunc("GET /api/tickets", ticketHandlers.List)
	api.HandleFunc("GET /api/tickets/{id}", ticketHandlers.Get)
	api.HandleFunc("POST /api/tickets", ticketHandlers.Create)
	api.HandleFunc("GET /api/audit-logs", auditHandlers.List)
	api.HandleFunc("GET /api/audit-logs/summary", auditHandlers.Summary)
	api.HandleFunc("GET /api/releases", releaseHandlers.List)
	api.HandleFunc("GET /api/activity", activityHandlers.List)

	requireSession := RequireSession(services.Sessions, services.SessionCookie)

	mux := http.NewServeMux()
	mux.Handle("/api/", requireSession(api))
	mux.HandleFunc("GET /healthz", healthHandlers.Healthz)
	mux.HandleFunc("HEAD /healthz", healthHandlers.Healthz)
	mux.HandleFunc("GET /readyz", healthHandlers.Readyz)

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler
}
