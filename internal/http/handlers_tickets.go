package httpx

import (
	"net/http"

	"github.com/orbitalhq/console-api/internal/domain/model"
	"github.com/orbitalhq/console-api/internal/service"
)

// TicketHandlers serves the ticket listing, detail, and create proxy.
type TicketHandlers struct {
	Svc      *service.TicketService
	PageSize PageSizeConfig
}

// PageSizeConfig bounds list pagination.
type PageSizeConfig struct {
	Default int
	Max     int
}

func (c PageSizeConfig) orDefaults() PageSizeConfig {
	if c.Default < 1 {
		c.Default = 20
	}
	if c.Max < 1 {
		c.Max = 100
	}
	return c
}

// List returns the unified ticket page, tenant-scoped or aggregated.
func (h *TicketHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sizes := h.PageSize.orDefaults()
	page, limit := ParsePageLimit(r, sizes.Default, sizes.Max)
	q := r.URL.Query()

	result, err := h.Svc.List(r.Context(), sess, service.TicketListParams{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		TenantID: q.Get("tenant_id"),
		Filter:   q.Get("filter"),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Get returns one ticket in the caller's tenant scope.
func (h *TicketHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	rec, err := h.Svc.Get(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}

// Create proxies ticket creation.
func (h *TicketHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input model.Record
	if !DecodeJSON(w, r, &input) {
		return
	}

	created, err := h.Svc.Create(r.Context(), sess, input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}
