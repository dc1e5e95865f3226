package httpx

import (
	"net/http"

	"github.com/orbitalhq/console-api/internal/service"
)

// AuditHandlers serves the audit-log listing and summary.
type AuditHandlers struct {
	Svc      *service.AuditService
	PageSize PageSizeConfig
}

// List returns the unified audit-log page, tenant-scoped or aggregated.
func (h *AuditHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sizes := h.PageSize.orDefaults()
	page, limit := ParsePageLimit(r, sizes.Default, sizes.Max)
	q := r.URL.Query()

	result, err := h.Svc.List(r.Context(), sess, service.AuditListParams{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Severity: q.Get("severity"),
		Action:   q.Get("action"),
		From:     q.Get("from"),
		To:       q.Get("to"),
		TenantID: q.Get("tenant_id"),
		Filter:   q.Get("filter"),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Summary returns the audit counters, tenant-scoped or summed cross-tenant.
func (h *AuditHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.Svc.Summary(r.Context(), sess)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
