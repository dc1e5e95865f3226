package httpx

import (
	"net/http"

	"github.com/orbitalhq/console-api/internal/domain/model"
	"github.com/orbitalhq/console-api/internal/service"
)

// TenantHandlers serves the tenant listing and write proxies.
type TenantHandlers struct {
	Svc *service.TenantService
}

// List returns the tenants visible to the caller as a single page.
func (h *TenantHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.Svc.ListRecords(r.Context(), sess.Session)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	page, limit := ParsePageLimit(r, 100, 100)
	WriteJSON(w, http.StatusOK, model.NewPage(records, page, limit))
}

// Create proxies tenant creation.
func (h *TenantHandlers) Create(w http.ResponseWriter, r *http.Request) {
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

// Delete proxies tenant deletion.
func (h *TenantHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.Svc.Delete(r.Context(), sess, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
